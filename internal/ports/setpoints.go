package ports

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/quentinrf/greenhouse-controller/internal/domain"
)

// ApplySetpoints stores every batch from src into settings until the source
// closes or ctx is done. Invalid setpoints are logged and skipped.
func ApplySetpoints(ctx context.Context, src SetpointSource, settings *domain.UserSettings) {
	for batch := range src.Setpoints(ctx) {
		for _, sp := range batch {
			if sp.Clear {
				settings.Clear(sp.Variable)
				log.Info().Str("variable", string(sp.Variable)).Msg("cleared user setting")
				continue
			}
			if err := settings.Set(sp.Variable, sp.Value); err != nil {
				log.Warn().Err(err).Str("variable", string(sp.Variable)).Msg("rejected user setting")
				continue
			}
			log.Info().
				Str("variable", string(sp.Variable)).
				Str("target", domain.FormatValue(sp.Variable, sp.Value)).
				Msg("updated user setting")
		}
	}
}
