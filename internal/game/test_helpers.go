package game

// newTestState builds a small deterministic state for mutator tests.
func newTestState() *State {
	s := NewState()
	s.Player.Money = 200
	s.Band.Harmony = 50
	for i := range s.Band.Members {
		s.Band.Members[i].Mood = 50
		s.Band.Members[i].Stamina = 50
	}
	return s
}

func withTrait(s *State, member, traitID string) *State {
	if m := s.Band.Member(member); m != nil {
		m.Traits = append(m.Traits, Trait{ID: traitID, Name: traitID})
	}
	return s
}
