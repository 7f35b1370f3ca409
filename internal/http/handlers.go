package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/rally-stats/internal/pubsub"
	"github.com/mauv0809/rally-stats/internal/service"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.FromContext(r.Context()).Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// ---- players ----

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := newQueryParams(r)
		filter := service.PlayerFilter{
			Name:          q.str("name"),
			Gender:        q.str("gender"),
			PreferredHand: q.str("preferredHand"),
			AgeGroup:      q.str("ageGroup"),
			MinAge:        q.intPtr("minAge"),
			MaxAge:        q.intPtr("maxAge"),
			Sort:          q.str("sort"),
			Order:         q.str("order"),
		}
		req := q.page()
		if err := q.err(); err != nil {
			writeError(w, r, err)
			return
		}
		env, err := s.Players.FindAll(r.Context(), filter, req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, env)
	}
}

func (s *Server) CreatePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in service.CreatePlayer
		if err := decodeBody(w, r, &in); err != nil {
			writeError(w, r, err)
			return
		}
		p, err := s.Players.Create(r.Context(), in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		w.Header().Set("Location", "/players/"+p.ID)
		writeJSON(w, http.StatusCreated, p)
	}
}

func (s *Server) GetPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := s.Players.FindByID(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func (s *Server) UpdatePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in service.UpdatePlayer
		if err := decodeBody(w, r, &in); err != nil {
			writeError(w, r, err)
			return
		}
		p, err := s.Players.Update(r.Context(), r.PathValue("id"), in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func (s *Server) DeletePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Players.Delete(r.Context(), r.PathValue("id")); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ---- tests ----

func (s *Server) ListTestsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := newQueryParams(r)
		filter := service.TestFilter{
			Name:           q.str("name"),
			TestType:       q.str("testType"),
			From:           q.str("from"),
			To:             q.str("to"),
			MinPlayingTime: q.intPtr("minPlayingTime"),
			MaxPlayingTime: q.intPtr("maxPlayingTime"),
			Sort:           q.str("sort"),
			Order:          q.str("order"),
		}
		req := q.page()
		if err := q.err(); err != nil {
			writeError(w, r, err)
			return
		}
		env, err := s.Tests.FindAll(r.Context(), filter, req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, env)
	}
}

func (s *Server) CreateTestHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in service.CreateTest
		if err := decodeBody(w, r, &in); err != nil {
			writeError(w, r, err)
			return
		}
		t, err := s.Tests.Create(r.Context(), in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		w.Header().Set("Location", "/tests/"+t.ID)
		writeJSON(w, http.StatusCreated, t)
	}
}

func (s *Server) GetTestHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := s.Tests.FindByID(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, t)
	}
}

func (s *Server) UpdateTestHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in service.UpdateTest
		if err := decodeBody(w, r, &in); err != nil {
			writeError(w, r, err)
			return
		}
		t, err := s.Tests.Update(r.Context(), r.PathValue("id"), in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, t)
	}
}

func (s *Server) DeleteTestHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Tests.Delete(r.Context(), r.PathValue("id")); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ---- results ----

func (s *Server) ListResultsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := newQueryParams(r)
		filter := service.ResultFilter{
			PlayerID:   q.str("playerId"),
			TestID:     q.str("testId"),
			PlayerName: q.str("playerName"),
			MinScore:   q.intPtr("minScore"),
			MaxScore:   q.intPtr("maxScore"),
			Category:   q.str("category"),
			Sort:       q.str("sort"),
			Order:      q.str("order"),
		}
		req := q.page()
		if err := q.err(); err != nil {
			writeError(w, r, err)
			return
		}
		env, err := s.Results.FindAll(r.Context(), filter, req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, env)
	}
}

func (s *Server) CreateResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in service.CreateResult
		if err := decodeBody(w, r, &in); err != nil {
			writeError(w, r, err)
			return
		}
		res, err := s.Results.Create(r.Context(), in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		w.Header().Set("Location", "/results/"+res.ID)
		writeJSON(w, http.StatusCreated, res)
	}
}

func (s *Server) GetResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := s.Results.FindByID(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func (s *Server) UpdateResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in service.UpdateResult
		if err := decodeBody(w, r, &in); err != nil {
			writeError(w, r, err)
			return
		}
		res, err := s.Results.Update(r.Context(), r.PathValue("id"), in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func (s *Server) DeleteResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Results.Delete(r.Context(), r.PathValue("id")); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ---- events ----

// ResultRecordedHandler receives Pub/Sub push deliveries of result-recorded events and posts them to Slack.
// A non-2xx reply makes Pub/Sub redeliver, so only notifier failures return 500.
func (s *Server) ResultRecordedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.FromContext(r.Context())
		var push pubsub.PushRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&push); err != nil {
			logger.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		var event pubsub.ResultRecorded
		if err := pubsub.Decode(push.Message.Data, &event); err != nil {
			http.Error(w, "Invalid message data", http.StatusBadRequest)
			return
		}
		logger.Debug("Received result-recorded event", "messageID", push.Message.ID, "resultID", event.ResultID)

		if s.Notifier == nil {
			logger.Warn("No notifier configured, dropping event", "resultID", event.ResultID)
			w.Write([]byte("OK"))
			return
		}
		if err := s.Notifier.SendResultNotification(r.Context(), event, isDryRunFromContext(r)); err != nil {
			logger.Error("Failed to send result notification", "error", err, "resultID", event.ResultID)
			http.Error(w, "Failed to send notification", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
