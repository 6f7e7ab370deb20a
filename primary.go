package metcolour

import (
	"encoding/json"
	"fmt"
)

// PrimaryColour is the coarse colour bucket of an image palette.
type PrimaryColour int

const (
	PrimaryNone  PrimaryColour = iota // every palette sample is grey
	PrimaryRed                        // red channel wins most samples
	PrimaryGreen                      // green channel wins most samples
	PrimaryBlue                       // blue channel wins most samples
)

func (p PrimaryColour) String() string {
	switch p {
	case PrimaryRed:
		return "Red"
	case PrimaryGreen:
		return "Green"
	case PrimaryBlue:
		return "Blue"
	default:
		return "None"
	}
}

// ParsePrimaryColour is the inverse of PrimaryColour.String.
func ParsePrimaryColour(s string) (PrimaryColour, error) {
	switch s {
	case "None":
		return PrimaryNone, nil
	case "Red":
		return PrimaryRed, nil
	case "Green":
		return PrimaryGreen, nil
	case "Blue":
		return PrimaryBlue, nil
	default:
		return PrimaryNone, fmt.Errorf("%w: unknown primary colour %q", ErrInvalidArgument, s)
	}
}

// MarshalJSON encodes the colour as its name.
func (p PrimaryColour) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON accepts only the four names produced by MarshalJSON.
func (p *PrimaryColour) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParsePrimaryColour(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// channelColours maps a winning channel index to its bucket.
var channelColours = [3]PrimaryColour{PrimaryRed, PrimaryGreen, PrimaryBlue}

// paletteVotes is the running state of ClassifyPalette.
type paletteVotes struct {
	votes      [3]int
	monochrome bool
}

func (s paletteVotes) add(c RGB) paletteVotes {
	s.monochrome = s.monochrome && c.IsMonochrome()
	s.votes[IndexOfMax(c)]++
	return s
}

// ClassifyPalette reports which channel dominates the most palette samples.
//
// Each sample votes for its strongest channel (earliest channel on ties) and the
// channel with the most votes wins, again with ties going to the earliest channel.
// If every sample is monochrome the votes are discarded and PrimaryNone is returned;
// a single coloured sample is enough to go through voting.
//
// An empty palette is a caller bug and yields ErrEmptyPalette.
func ClassifyPalette(p Palette) (PrimaryColour, error) {
	if len(p) == 0 {
		return PrimaryNone, ErrEmptyPalette
	}

	state := paletteVotes{monochrome: true}
	for _, c := range p {
		state = state.add(c)
	}

	if state.monochrome {
		return PrimaryNone, nil
	}

	idx := IndexOfMax(state.votes)
	if idx < 0 || idx >= len(channelColours) {
		return PrimaryNone, nil
	}
	return channelColours[idx], nil
}
