package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// MaxCoord is the largest coordinate a broadcast may carry on either axis.
const MaxCoord = 2000

// Coord is a coordinate as a client sent it. JSON numbers and numeric strings
// are accepted; a missing or null value decodes to zero.
type Coord float64

// UnmarshalJSON implements json.Unmarshaler. Values beyond float64 range
// decode to the matching infinity so clamping still applies.
func (c *Coord) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = 0
		return nil
	}

	text := string(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("coordinate %s is not numeric", data)
		}
		text = strings.TrimSpace(s)
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return fmt.Errorf("coordinate %s is not numeric", data)
	}
	*c = Coord(f)
	return nil
}

// Clamped returns the coordinate constrained to [0, MaxCoord].
func (c Coord) Clamped() float64 {
	return ClampCoord(float64(c))
}

// ClampCoord constrains v to [0, MaxCoord]. NaN maps to zero.
func ClampCoord(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return lo.Clamp(v, 0, MaxCoord)
}
