package models

// Snapshot is the full syncable state of one replica.
type Snapshot struct {
	Settings *AppSettings       `json:"appSettings,omitempty"`
	Novels   []*Novel           `json:"novels"`
	AIModels []AIModelConfig    `json:"aiModels"`
	Covers   []CoverHistoryItem `json:"coverHistory"`
}

// NovelByID returns the novel with the given id, or nil.
func (s *Snapshot) NovelByID(id string) *Novel {
	for _, n := range s.Novels {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// EntityIDs returns the ids of all entities, settings included when present.
func (s *Snapshot) EntityIDs() []string {
	ids := make([]string, 0, len(s.Novels)+len(s.AIModels)+len(s.Covers)+1)
	for _, n := range s.Novels {
		ids = append(ids, ConflictID(EntityNovel, n.ID))
	}
	for _, m := range s.AIModels {
		ids = append(ids, ConflictID(EntityAIModel, m.ID))
	}
	for _, c := range s.Covers {
		ids = append(ids, ConflictID(EntityCover, c.ID))
	}
	if s.Settings != nil {
		ids = append(ids, ConflictID(EntitySettings, SettingsID))
	}
	return ids
}

// Empty reports whether the snapshot holds no entities.
func (s *Snapshot) Empty() bool {
	return s == nil || (len(s.Novels) == 0 && len(s.AIModels) == 0 && len(s.Covers) == 0 && s.Settings == nil)
}
