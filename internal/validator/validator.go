package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/timtruong/timtruong-backend/internal/model"
)

// trans is the singleton English translator for validation errors.
var (
	trans     ut.Translator
	setupOnce sync.Once
)

var universityCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// customTags maps each domain tag to its check and its English message.
var customTags = []struct {
	tag     string
	fn      govalidator.Func
	message string
}{
	{"exam_type", func(fl govalidator.FieldLevel) bool {
		_, err := model.ParseExamType(fl.Field().String())
		return err == nil
	}, "{0} must be THPTQG or ĐGNL"},
	{"subject_combination", func(fl govalidator.FieldLevel) bool {
		_, err := model.ParseSubjectCombination(fl.Field().String())
		return err == nil
	}, "{0} must be a known subject combination code such as A00"},
	{"university_type", func(fl govalidator.FieldLevel) bool {
		return model.UniversityType(fl.Field().String()).Valid()
	}, "{0} must be 'Public' or 'Private'"},
	{"university_code", func(fl govalidator.FieldLevel) bool {
		return universityCodePattern.MatchString(fl.Field().String())
	}, "{0} must be exactly 3 uppercase letters"},
}

// Setup registers the validator with English translations on Gin's binding engine.
// Safe to call more than once; only the first call has an effect.
func Setup() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*govalidator.Validate)
		if !ok {
			return
		}

		// Use JSON tag name for field names in error messages.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		trans, _ = uni.GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		for _, ct := range customTags {
			_ = v.RegisterValidation(ct.tag, ct.fn)
			message := ct.message
			_ = v.RegisterTranslation(ct.tag, trans,
				func(ut ut.Translator) error {
					return ut.Add(ct.tag, message, true)
				},
				func(ut ut.Translator, fe govalidator.FieldError) string {
					t, _ := ut.T(fe.Tag(), fe.Field())
					return t
				},
			)
		}
	})
}

// TranslateErrors takes a binding/validation error and returns a map of
// field name → human-readable error message. If the error is not a
// validation error, it returns a single-key map with "detail".
func TranslateErrors(err error) map[string]string {
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			if trans != nil {
				fields[fe.Field()] = fe.Translate(trans)
			} else {
				fields[fe.Field()] = fe.Error()
			}
		}
		return fields
	}

	// Not a validation error (e.g., JSON syntax error).
	fields["detail"] = err.Error()
	return fields
}

// Bind binds and validates the request body into dst.
// Returns nil on success or a translated field error map on failure.
func Bind(c *gin.Context, dst interface{}) map[string]string {
	if err := c.ShouldBindJSON(dst); err != nil {
		return TranslateErrors(err)
	}
	return nil
}
