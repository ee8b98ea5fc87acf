package story

// Registry is an in-memory [Resolver]. It is not safe for concurrent use.
type Registry struct {
	stories []*Story
}

// NewRegistry returns a registry holding stories.
func NewRegistry(stories ...*Story) *Registry {
	return &Registry{stories: stories}
}

// Add registers s.
func (r *Registry) Add(s *Story) {
	r.stories = append(r.stories, s)
}

// FindByID returns the story with the persisted id, or nil.
func (r *Registry) FindByID(id string) *Story {
	for _, s := range r.stories {
		if s.ID != "" && s.ID == id {
			return s
		}
	}
	return nil
}

// FindByLocalID returns the story with the local id, or nil.
func (r *Registry) FindByLocalID(localID string) *Story {
	for _, s := range r.stories {
		if s.LocalID == localID {
			return s
		}
	}
	return nil
}

// All returns every registered story.
func (r *Registry) All() []*Story {
	out := make([]*Story, len(r.stories))
	copy(out, r.stories)
	return out
}
