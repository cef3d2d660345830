// Copyright (c) 2025 Hawk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Sink receives free-form entries (server responses, errors) from the auth
// client and writes them to a zerolog logger.
type Sink struct {
	log zerolog.Logger
}

// NewSink wraps l.
func NewSink(l zerolog.Logger) *Sink {
	return &Sink{log: l}
}

// Fielder is implemented by entries that know how to describe themselves.
type Fielder interface {
	LogFields() map[string]any
}

// Log records entry. Errors go out at error level, everything else at info.
func (s *Sink) Log(entry any) {
	switch v := entry.(type) {
	case nil:
		return
	case error:
		s.log.Error().Str("error", Mask(v.Error())).Msg("auth")
	case Fielder:
		ev := s.log.Info()
		for k, val := range v.LogFields() {
			if str, ok := val.(string); ok {
				ev = ev.Str(k, Mask(str))
				continue
			}
			ev = ev.Interface(k, val)
		}
		ev.Msg("auth")
	default:
		s.log.Info().Str("entry", Mask(fmt.Sprint(v))).Msg("auth")
	}
}
