package measurements

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidDate = errors.New("invalid date")
)

// Formato de entrada: "January 05, 2024 at 02:30PM" (MMMM DD, YYYY at HH:mmA).
// Se usa hora 24h + meridiano para aceptar tanto "02:30PM" como "14:30PM".
var displayLayouts = []string{
	"January 2, 2006 at 15:04PM",
	"January 2, 2006 at 15:04 PM",
}

// StoreLayout es el formato que va al título en Notion (DD-MM-YYYY HH:mm).
const StoreLayout = "02-01-2006 15:04"

// ParseDisplayDate parsea la fecha tal como la manda el cliente.
func ParseDisplayDate(s string) (time.Time, error) {
	s = normalizeMeridiem(strings.TrimSpace(s))
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidDate)
	}

	for _, layout := range displayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q does not match \"MMMM DD, YYYY at HH:mmA\"", ErrInvalidDate, s)
}

func FormatStoreDate(t time.Time) string {
	return t.Format(StoreLayout)
}

// ReformatDate: formato de entrada -> formato del store.
func ReformatDate(s string) (string, error) {
	t, err := ParseDisplayDate(s)
	if err != nil {
		return "", err
	}
	return FormatStoreDate(t), nil
}

// time.Parse solo acepta "AM"/"PM" en mayúsculas.
func normalizeMeridiem(s string) string {
	if len(s) < 2 {
		return s
	}
	suffix := s[len(s)-2:]
	switch suffix {
	case "am", "pm", "Am", "Pm", "aM", "pM":
		return s[:len(s)-2] + strings.ToUpper(suffix)
	}
	return s
}
