package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/busebalkan99/design-checklist-vercel/internal/api/presenter"
	"github.com/busebalkan99/design-checklist-vercel/internal/gate"
)

const (
	msgNoSavedData = "No saved data found (this is normal for new users)"
	msgLoaded      = "Data loaded successfully"
	msgSaved       = "Data saved successfully"
)

// handleLoad returns the saved data of the user given in the "userId" query parameter.
func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)

	res, err := s.gate.Load(ctx, gate.LoadRequest{
		Method:        r.Method,
		Authorization: r.Header.Get("Authorization"),
		UserID:        r.URL.Query().Get("userId"),
	})
	if err != nil {
		logFailure(logger, err, "load request rejected")
		presenter.Err(w, r, err)
		return
	}

	resp := presenter.LoadEnvelope{
		Envelope: presenter.Success(r, msgNoSavedData, res.UserID),
	}
	if res.Record != nil {
		resp.Message = msgLoaded
		resp.Data = res.Record.Payload
		if ts := res.Record.Timestamp; ts != "" {
			resp.Timestamp = &ts
		}
	}

	presenter.JSON(w, r, resp, http.StatusOK)
}

// handleSave stores the data sent by the user given in the body "userId" field.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)

	res, err := s.gate.Save(ctx, gate.SaveRequest{
		Method:        r.Method,
		Authorization: r.Header.Get("Authorization"),
		Body:          http.MaxBytesReader(w, r.Body, maxSaveBody),
	})
	if err != nil {
		logFailure(logger, err, "save request rejected")
		presenter.Err(w, r, err)
		return
	}

	logger.Info().Str("user_id", res.UserID).Msg("data saved")

	presenter.JSON(w, r, presenter.SaveEnvelope{
		Envelope:  presenter.Success(r, msgSaved, res.UserID),
		Timestamp: presenter.FormatTimestamp(res.Timestamp),
	}, http.StatusOK)
}

func logFailure(logger *zerolog.Logger, err error, msg string) {
	kind := gate.KindOf(err)
	ev := logger.Warn()
	if kind == gate.KindInternal {
		ev = logger.Error()
	}
	ev.Err(err).Str("kind", kind.String()).Msg(msg)
}
