package rhythm

import "math/rand"

// Spawner materializes cues at the active profile's interval. It keeps
// only its RNG; the caller owns the last spawn time.
type Spawner struct {
	rng *rand.Rand
}

// NewSpawner seeds a spawner for reproducible lane sequences.
func NewSpawner(seed int64) *Spawner {
	return &Spawner{rng: rand.New(rand.NewSource(seed))}
}

// MaybeSpawn returns a new cue when at least one spawn interval has passed
// since lastSpawn. Lanes are uniform with repeats allowed.
func (s *Spawner) MaybeSpawn(now, lastSpawn float64, p Profile) (Cue, bool) {
	if !spanReached(now-lastSpawn, p.SpawnInterval) {
		return Cue{}, false
	}
	lane := Lanes[s.rng.Intn(NumLanes)]
	return Cue{
		Lane:     lane,
		X:        p.Anchor(lane),
		Position: StartY,
		Velocity: p.CueSpeed,
	}, true
}
