// Package sharecode encodes quiz configurations into opaque portable codes
// and decodes them back, strictly validating the payload at the boundary.
package sharecode

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/url"
	"strings"

	"millionaire-quiz-service/internal/domain"
)

// payload is the wire shape of a shared contestant. Identity is never
// encoded; imports always regenerate IDs.
type payload struct {
	Name               string            `json:"name"`
	Questions          []payloadQuestion `json:"questions"`
	RandomizeQuestions bool              `json:"randomizeQuestions"`
	RandomizeOptions   bool              `json:"randomizeOptions"`
	EnableTimer        bool              `json:"enableTimer"`
	TimerMinutes       int               `json:"timerMinutes"`
}

// payloadQuestion keeps CorrectAnswer as a pointer so a missing field is
// distinguishable from index 0 and can be rejected instead of silently
// defaulted.
type payloadQuestion struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer *int     `json:"correctAnswer"`
}

// Encode serializes a contestant to an opaque base64 code suitable for a
// #data= URL fragment.
func Encode(c domain.Contestant) string {
	p := payload{
		Name:               c.Name,
		Questions:          make([]payloadQuestion, 0, len(c.Questions)),
		RandomizeQuestions: c.RandomizeQuestions,
		RandomizeOptions:   c.RandomizeOptions,
		EnableTimer:        c.EnableTimer,
		TimerMinutes:       c.TimerMinutes,
	}
	for _, q := range c.Questions {
		answer := q.CorrectAnswer
		p.Questions = append(p.Questions, payloadQuestion{
			Text:          q.Text,
			Options:       append([]string(nil), q.Options...),
			CorrectAnswer: &answer,
		})
	}
	raw, _ := json.Marshal(p)
	return base64.StdEncoding.EncodeToString(raw)
}

// Decode parses a share code, or a full share URL carrying one, back into an
// insert payload. Malformed input of any kind yields ErrInvalidShareCode;
// callers treat that as a recoverable user error.
func Decode(code string) (domain.NewContestant, error) {
	data := extractData(code)
	if data == "" {
		return domain.NewContestant{}, domain.ErrInvalidShareCode
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return domain.NewContestant{}, fmt.Errorf("%w: %v", domain.ErrInvalidShareCode, err)
	}
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.NewContestant{}, fmt.Errorf("%w: %v", domain.ErrInvalidShareCode, err)
	}
	if p.Name == "" || p.Questions == nil {
		return domain.NewContestant{}, domain.ErrInvalidShareCode
	}

	out := domain.NewContestant{
		Name:               p.Name,
		Questions:          make([]domain.NewQuestion, 0, len(p.Questions)),
		RandomizeQuestions: p.RandomizeQuestions,
		RandomizeOptions:   p.RandomizeOptions,
		EnableTimer:        p.EnableTimer,
		TimerMinutes:       p.TimerMinutes,
	}
	if out.TimerMinutes == 0 {
		out.TimerMinutes = 1
	}
	for _, q := range p.Questions {
		// Missing critical fields are a decode failure, not a default.
		if q.Text == "" || len(q.Options) != domain.OptionCount || q.CorrectAnswer == nil {
			return domain.NewContestant{}, domain.ErrInvalidShareCode
		}
		if *q.CorrectAnswer < 0 || *q.CorrectAnswer >= domain.OptionCount {
			return domain.NewContestant{}, domain.ErrInvalidShareCode
		}
		out.Questions = append(out.Questions, domain.NewQuestion{
			Text:          q.Text,
			Options:       append([]string(nil), q.Options...),
			CorrectAnswer: *q.CorrectAnswer,
		})
	}
	return out, nil
}

// extractData accepts a bare code or a share URL with the code in a #data=
// fragment or a ?data= query parameter.
func extractData(input string) string {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		return trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return trimmed
	}
	if data, ok := strings.CutPrefix(u.Fragment, "data="); ok && data != "" {
		return data
	}
	return u.Query().Get("data")
}

// codeAlphabet is Crockford base32: 32 symbols with the easily-confused
// I, L, O, and U left out.
const codeAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// LookupCodeLength is the length of short server-side lookup codes.
const LookupCodeLength = 6

// NewLookupCode generates a short code for server-side share lookup.
func NewLookupCode(rnd *rand.Rand) string {
	var b strings.Builder
	b.Grow(LookupCodeLength)
	for i := 0; i < LookupCodeLength; i++ {
		b.WriteByte(codeAlphabet[rnd.Intn(len(codeAlphabet))])
	}
	return b.String()
}
