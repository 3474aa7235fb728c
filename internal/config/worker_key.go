package config

type WorkerKeyStruct struct {
	PersistSearchEventsQueue string
}

var WorkerKey = &WorkerKeyStruct{
	PersistSearchEventsQueue: "persist_search_events_queue",
}
