package health

// Service reports which backends the process was wired with.
type Service struct {
	LLMConfigured  bool
	PersistBackend string
	ArchiveStore   string
}

// NewService constructs a health service.
func NewService(llmConfigured bool, persistBackend, archiveStore string) *Service {
	return &Service{
		LLMConfigured:  llmConfigured,
		PersistBackend: persistBackend,
		ArchiveStore:   archiveStore,
	}
}

// Status returns the health payload.
func (s *Service) Status() map[string]any {
	return map[string]any{
		"ok":             true,
		"llmConfigured":  s.LLMConfigured,
		"persistBackend": s.PersistBackend,
		"archiveStore":   s.ArchiveStore,
	}
}
