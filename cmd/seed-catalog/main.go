package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/timtruong/timtruong-backend/internal/config"
	"github.com/timtruong/timtruong-backend/internal/database"
	"github.com/timtruong/timtruong-backend/internal/logger"
	"github.com/timtruong/timtruong-backend/internal/model"
	"github.com/timtruong/timtruong-backend/internal/repository"
	"github.com/timtruong/timtruong-backend/internal/service"
	"github.com/timtruong/timtruong-backend/internal/validator"
)

type seedRequirement struct {
	examType string
	score    float64
	combo    string
	year     int
}

type seedMajor struct {
	name         string
	code         string
	fieldOfStudy string
	requirements []seedRequirement
}

type seedUniversity struct {
	university model.UniversityRequest
	campus     model.CreateCampusRequest
	majors     []seedMajor
}

func ptr(s string) *string { return &s }

var catalog = []seedUniversity{
	{
		university: model.UniversityRequest{
			Name: "Trường Đại học Bách Khoa TP.HCM", ShortName: ptr("ĐHBK TP.HCM"),
			EnglishName: ptr("Ho Chi Minh City University of Technology"), Code: "BKA", Type: "Public",
		},
		campus: model.CreateCampusRequest{Name: "Cơ sở Lý Thường Kiệt", Address: ptr("268 Lý Thường Kiệt, Phường 14"), District: ptr("Quận 10"), City: "TP. Hồ Chí Minh"},
		majors: []seedMajor{
			{"Khoa học Máy tính", "7480101", "Công nghệ thông tin", []seedRequirement{
				{"THPTQG", 28.35, "A00", 2024}, {"THPTQG", 28.1, "A01", 2024}, {"ĐGNL", 990, "", 2024},
			}},
			{"Kỹ thuật Điện", "7520201", "Kỹ thuật", []seedRequirement{
				{"THPTQG", 25.8, "A00", 2024}, {"THPTQG", 25.5, "A01", 2024}, {"ĐGNL", 820, "", 2024},
			}},
		},
	},
	{
		university: model.UniversityRequest{
			Name: "Trường Đại học Kinh tế TP.HCM", ShortName: ptr("UEH"),
			EnglishName: ptr("University of Economics Ho Chi Minh City"), Code: "KSA", Type: "Public",
		},
		campus: model.CreateCampusRequest{Name: "Cơ sở Nguyễn Đình Chiểu", Address: ptr("59C Nguyễn Đình Chiểu"), District: ptr("Quận 3"), City: "TP. Hồ Chí Minh"},
		majors: []seedMajor{
			{"Tài chính - Ngân hàng", "7340201", "Kinh tế", []seedRequirement{
				{"THPTQG", 25.9, "A00", 2024}, {"THPTQG", 25.9, "D01", 2024}, {"ĐGNL", 870, "", 2024},
			}},
			{"Marketing", "7340115", "Kinh tế", []seedRequirement{
				{"THPTQG", 27.1, "D01", 2024}, {"ĐGNL", 930, "", 2024},
			}},
		},
	},
	{
		university: model.UniversityRequest{
			Name: "Trường Đại học Quốc tế Sài Gòn", EnglishName: ptr("Saigon International University"), Code: "QST", Type: "Private",
		},
		campus: model.CreateCampusRequest{Name: "Cơ sở Thảo Điền", Address: ptr("16 Tống Hữu Định"), District: ptr("TP. Thủ Đức"), City: "TP. Hồ Chí Minh"},
		majors: []seedMajor{
			{"Quản trị Kinh doanh", "7340101", "Kinh tế", []seedRequirement{
				{"THPTQG", 17, "A00", 2024}, {"THPTQG", 17, "D01", 2024}, {"ĐGNL", 600, "", 2024},
			}},
		},
	},
	{
		university: model.UniversityRequest{
			Name: "Trường Đại học An Giang", EnglishName: ptr("An Giang University"), Code: "AGU", Type: "Public",
		},
		campus: model.CreateCampusRequest{Name: "Cơ sở chính", Address: ptr("18 Ung Văn Khiêm"), City: "Long Xuyên", OldCity: "An Giang"},
		majors: []seedMajor{
			{"Nông học", "7620109", "Nông nghiệp", []seedRequirement{
				{"THPTQG", 16, "B00", 2024}, {"THPTQG", 16.5, "A00", 2024}, {"ĐGNL", 550, "", 2024},
			}},
		},
	},
}

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	validator.Setup()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	universityRepo := repository.NewUniversityRepository(pool)
	majorRepo := repository.NewMajorRepository(pool)
	requirementRepo := repository.NewAdmissionRequirementRepository(pool)

	universityService := service.NewUniversityService(universityRepo, log)
	campusService := service.NewCampusService(repository.NewCampusRepository(pool), universityRepo, log)
	majorService := service.NewMajorService(majorRepo, universityRepo, log)

	fmt.Printf("=== Seeding %d universities ===\n", len(catalog))

	var inserted, updated int
	for _, seed := range catalog {
		uni, err := universityRepo.GetByCode(ctx, seed.university.Code)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			uni, err = universityService.Create(ctx, seed.university)
			if err != nil {
				log.Fatal().Err(err).Str("code", seed.university.Code).Msg("Failed to create university")
			}
			seed.campus.UniversityCode = uni.Code
			if _, err := campusService.Create(ctx, seed.campus); err != nil {
				log.Fatal().Err(err).Str("code", uni.Code).Msg("Failed to create campus")
			}
			fmt.Printf("Created %s (%s)\n", uni.Name, uni.Code)
		case err != nil:
			log.Fatal().Err(err).Msg("Failed to check existing university")
		default:
			fmt.Printf("Found existing %s (%s)\n", uni.Name, uni.Code)
		}

		for _, sm := range seed.majors {
			major, err := majorRepo.FindByName(ctx, uni.ID, sm.name)
			if errors.Is(err, repository.ErrNotFound) {
				major, err = majorService.Create(ctx, uni.ID, model.MajorRequest{
					Name: sm.name, Code: ptr(sm.code), FieldOfStudy: ptr(sm.fieldOfStudy),
				})
			}
			if err != nil {
				log.Fatal().Err(err).Str("major", sm.name).Msg("Failed to resolve major")
			}

			for _, sr := range sm.requirements {
				req := model.AdmissionRequirementRequest{ExamType: sr.examType, Score: sr.score, Year: sr.year}
				if sr.combo != "" {
					req.SubjectCombination = ptr(sr.combo)
				}
				requirement, err := service.NewAdmissionRequirement(req)
				if err != nil {
					log.Fatal().Err(err).Str("major", sm.name).Msg("Invalid seed requirement")
				}
				requirement.MajorID = major.ID

				isNew, err := requirementRepo.Upsert(ctx, requirement)
				if err != nil {
					log.Fatal().Err(err).Str("major", sm.name).Msg("Failed to upsert requirement")
				}
				if isNew {
					inserted++
				} else {
					updated++
				}
			}
		}
	}

	fmt.Printf("\nSeed completed! %d requirements inserted, %d updated.\n", inserted, updated)
}
