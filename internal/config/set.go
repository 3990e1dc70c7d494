package config

// Global holds the global (profile-independent) settings block (§6).
type Global struct {
	CheckForUpdatesOnStartup  bool `json:"check_for_updates_on_startup"`
	ShowInMenuBar             bool `json:"show_in_menu_bar"`
	ShowProfileNameInMenuBar  bool `json:"show_profile_name_in_menu_bar"`
}

// Set is the top-level configuration document (§6): a global block plus an
// ordered list of profiles, exactly one of which is selected.
type Set struct {
	Global   Global    `json:"global"`
	Profiles []Profile `json:"profiles"`

	// IsLoaded is false when Load fell back to defaults because the file
	// was missing, unreadable, or invalid (§7).
	IsLoaded bool `json:"-"`
}

// DefaultSet is the fallback document used when no config file exists or
// it fails to parse (§7).
func DefaultSet() *Set {
	p := NewProfile("Default profile")
	p.Selected = true
	return &Set{
		Global: Global{
			CheckForUpdatesOnStartup: true,
			ShowInMenuBar:            true,
			ShowProfileNameInMenuBar: false,
		},
		Profiles: []Profile{p},
		IsLoaded: true,
	}
}

// SelectedProfile returns the profile with Selected == true, or the first
// profile if none is marked selected, per §4.3.
func (s *Set) SelectedProfile() Profile {
	for _, p := range s.Profiles {
		if p.Selected {
			return p
		}
	}
	if len(s.Profiles) > 0 {
		return s.Profiles[0]
	}
	return NewProfile("")
}

// SelectProfile marks the profile named name as selected and deselects all
// others. Returns false if no profile with that name exists.
func (s *Set) SelectProfile(name string) bool {
	found := false
	for i := range s.Profiles {
		if s.Profiles[i].Name == name {
			s.Profiles[i].Selected = true
			found = true
		} else {
			s.Profiles[i].Selected = false
		}
	}
	return found
}
