package hackslash

// Session holds the per-round counters the presentation layer reads.
// Player HP lives on the Player component.
type Session struct {
	Score    int
	Kills    int
	Ticks    int
	GameOver bool
}

// credit adds a kill and its score.
func (s *Session) credit(points int) {
	s.Score += points
	s.Kills++
}

// Stats summarises a finished or running round.
type Stats struct {
	Score     int
	Kills     int
	Ticks     int
	Waves     int
	SpeedTier int
	HP        int
	MaxHP     int
	GameOver  bool
}
