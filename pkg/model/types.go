package model

import "math"

// Seconds représente un instant dans la vidéo, en secondes (float).
// La valeur +Inf sert de sentinelle "jusqu'à la fin du média".
type Seconds float64

// OpenEnded retourne la sentinelle de fin ouverte.
func OpenEnded() Seconds {
	return Seconds(math.Inf(1))
}

// IsOpenEnded indique si s est la sentinelle de fin ouverte.
func (s Seconds) IsOpenEnded() bool {
	return math.IsInf(float64(s), 1)
}

// FromMilliseconds construit Seconds à partir d'un tStartMs json3.
func FromMilliseconds(ms int64) Seconds {
	return Seconds(float64(ms) / 1000.0)
}

// Token : une ligne reconnue comme timestamp, avec sa valeur parsée.
type Token struct {
	Line string
	At   Seconds
}

// Format de sortie supporté par l'outil.
type Format string

const (
	FormatXML   Format = "xml"
	FormatJSON3 Format = "json3"
	FormatTXT   Format = "txt"
)

func (f Format) Extension() string {
	return "." + string(f)
}

func (f Format) String() string {
	return string(f)
}
