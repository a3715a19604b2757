package mood

// Description is a human-friendly label for a pair of audio-feature targets.
type Description struct {
	Name    string
	Summary string
}

// Describe names the energy/valence quadrant the targets fall into.
//
// Quadrants:
//   - High Energy + High Valence = "Upbeat Party"
//   - High Energy + Low Valence  = "Intense & Dark"
//   - Low Energy  + High Valence = "Chill & Happy"
//   - Low Energy  + Low Valence  = "Reflective & Melancholy"
func Describe(p Params) Description {
	highEnergy := p.Energy > 0.6
	highValence := p.Valence > 0.5

	switch {
	case highEnergy && highValence:
		return Description{
			Name:    "Upbeat Party",
			Summary: "High-energy, positive vibes - perfect for dancing and celebrations",
		}
	case highEnergy:
		return Description{
			Name:    "Intense & Dark",
			Summary: "Intense, driving energy with darker emotional tones",
		}
	case highValence:
		return Description{
			Name:    "Chill & Happy",
			Summary: "Relaxed and uplifting - great for unwinding",
		}
	default:
		return Description{
			Name:    "Reflective & Melancholy",
			Summary: "Contemplative and introspective - ideal for quiet moments",
		}
	}
}
