// Package recommend maps a dominant emotion to a short list of practices
// using a fixed, ordered rule table. It holds no state and learns nothing.
package recommend

import (
	"strings"
	"unicode"
)

// DefaultLimit is how many recommendations the history view shows.
const DefaultLimit = 4

// Rule matches when any keyword is a case-insensitive substring of the
// value. Rules are evaluated in table order and the first match wins.
//
// The value is matched with punctuation turned into spaces and a space
// added at both ends, so a keyword written with surrounding spaces
// (" ira ") only matches a whole word and one with a leading space
// (" cansad") only matches a word start.
type Rule struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
	Advice   []string `json:"advice"`
}

// Rules is the ordered rule table. Keywords are lower case. A keyword
// must not occur inside words that belong to a later rule or to no rule
// ("ira" in "inspirado").
var Rules = []Rule{
	{
		Name:     "ansiedad",
		Keywords: []string{"ansiedad", "ansios", "miedo", "nervios", "preocupa", "intranquil", "anxiety", "fear", "worry"},
		Advice: []string{
			"Practica respiración 4-7-8 durante dos minutos antes de decidir.",
			"Escribe el peor escenario y tres acciones concretas si ocurriera.",
			"Reduce la cafeína después del mediodía durante una semana.",
			"Registra en el mapa corporal dónde aparece la tensión.",
			"Separa lo que controlas de lo que no en dos columnas.",
		},
	},
	{
		Name:     "ira",
		Keywords: []string{" ira ", "iracund", "enfad", "enoj", "rabia", "furi", "cólera", "colera", "frustra", "insatisf", " anger", "angry"},
		Advice: []string{
			"Aplica la pausa de diez minutos antes de responder.",
			"Identifica la norma que sientes que fue violada.",
			"Descarga la activación con movimiento físico breve.",
			"Formula tu petición en una frase sin adjetivos.",
		},
	},
	{
		Name:     "tristeza",
		Keywords: []string{"triste", "melancol", "desánimo", "desanimo", "vacío", "vacio", "infeliz", " sad ", "sadness", "unhappy"},
		Advice: []string{
			"Sal a la luz natural durante los primeros treinta minutos del día.",
			"Agenda un contacto social breve hoy mismo.",
			"Anota una cosa que sí salió bien, por pequeña que sea.",
			"Mantén horarios fijos de sueño aunque no tengas ganas.",
		},
	},
	{
		Name:     "culpa",
		Keywords: []string{"culpa", "vergüenza", "verguenza", "arrepent", "guilt", "shame"},
		Advice: []string{
			"Distingue el error cometido de la identidad: describe el hecho.",
			"Define una reparación concreta y pequeña.",
			"Pregúntate qué le dirías a un amigo en tu lugar.",
		},
	},
	{
		Name:     "cansancio",
		Keywords: []string{" cansad", "cansancio", "agota", "fatiga", "estrés", "estres", "exhaust", "tired", "stress"},
		Advice: []string{
			"Elimina una tarea de tu lista antes de añadir otra.",
			"Protege un bloque de descanso sin pantallas.",
			"Revisa tu ritmo circadiano: hora de despertar y de dormir.",
			"Delega o pospone lo que no sea irreversible.",
		},
	},
	{
		Name:     "calma",
		Keywords: []string{"calma", "tranquil", "descans", "alegr", "feliz", "gratitud", "satisf", "calm", "happy", " joy ", "joyful"},
		Advice: []string{
			"Anota qué condiciones hicieron posible este estado.",
			"Usa este momento para revisar una decisión pendiente.",
			"Comparte algo de esta energía con alguien cercano.",
		},
	},
}

var insufficientSignal = []string{
	"Registra al menos una emoción al día para detectar patrones.",
	"Completa el bloque de marcadores somáticos con el contexto de cada emoción.",
	"Vuelve a consultar tus insights después de una semana de registros.",
}

var defaultAdvice = []string{
	"Nombra la emoción con la palabra más precisa que encuentres.",
	"Anota el contexto en el que apareció.",
	"Observa si se repite a la misma hora del día.",
	"Elige una acción pequeña y revisa mañana su efecto.",
}

// Recommend returns the advice for a dominant value. ok reports whether a
// dominant value exists; when it is false the insufficient-signal list is
// returned. The result is never empty and is always a fresh copy.
func Recommend(value string, ok bool) []string {
	if !ok {
		return clone(insufficientSignal)
	}
	if r, matched := Match(value); matched {
		return clone(r.Advice)
	}
	return clone(defaultAdvice)
}

// Match returns the first rule whose keywords occur in value.
func Match(value string) (Rule, bool) {
	v := normalize(value)
	if strings.TrimSpace(v) == "" {
		return Rule{}, false
	}
	for _, r := range Rules {
		for _, k := range r.Keywords {
			if strings.Contains(v, k) {
				return r, true
			}
		}
	}
	return Rule{}, false
}

// Top returns at most n recommendations. n <= 0 means no limit.
func Top(recs []string, n int) []string {
	if n <= 0 || len(recs) <= n {
		return recs
	}
	return recs[:n]
}

// normalize lower-cases value, turns every rune that is not a letter or
// digit into a space and pads the result with one space on each side.
func normalize(value string) string {
	v := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, value)
	return " " + v + " "
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
