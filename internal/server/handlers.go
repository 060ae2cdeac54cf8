package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/raysh454/secrglue/internal/logging"
	"github.com/raysh454/secrglue/internal/store"
)

// handleGetPeople godoc
// @Summary Search people by name
// @Description Autocomplete source. Terms shorter than three characters return an empty list.
// @Tags lookups
// @Produce json
// @Param q query string true "search term"
// @Param term query string false "alias of q"
// @Success 200 {array} Suggestion
// @Router /secr/areas/getpeople/ [get]
func (s *Server) handleGetPeople(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	term := strings.TrimSpace(q.Get("q"))
	if term == "" {
		term = strings.TrimSpace(q.Get("term"))
	}
	out := []Suggestion{}
	if utf8.RuneCountInString(term) < store.MinSearchLength {
		writeJSON(w, http.StatusOK, out)
		return
	}

	people, err := s.store.SearchPeople(r.Context(), term, s.cfg.SearchLimit)
	if err != nil {
		s.logger.Warn("searching people", logging.Err(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	for _, p := range people {
		out = append(out, Suggestion{Label: p.Label(), Value: p.Label()})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleGetEmails godoc
// @Summary List a person's email addresses
// @Tags lookups
// @Produce json
// @Param id query int true "person id"
// @Success 200 {array} Option
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /secr/areas/getemails/ [get]
func (s *Server) handleGetEmails(w http.ResponseWriter, r *http.Request) {
	id, ok := s.int64Param(w, r, "id")
	if !ok {
		return
	}
	emails, err := s.store.EmailsForPerson(r.Context(), id)
	if err != nil {
		s.storeError(w, "listing emails", err)
		return
	}
	out := make([]Option, 0, len(emails))
	for _, e := range emails {
		out = append(out, Option{ID: e.Address, Value: e.Address})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleGetADs godoc
// @Summary List the directors of an area
// @Tags lookups
// @Produce json
// @Param area query int true "area id"
// @Success 200 {array} Option
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /secr/groups/get_ads/ [get]
func (s *Server) handleGetADs(w http.ResponseWriter, r *http.Request) {
	id, ok := s.int64Param(w, r, "area")
	if !ok {
		return
	}
	ads, err := s.store.AreaDirectors(r.Context(), id)
	if err != nil {
		s.storeError(w, "listing area directors", err)
		return
	}
	out := make([]Option, 0, len(ads))
	for _, d := range ads {
		out = append(out, Option{ID: strconv.FormatInt(d.PersonID, 10), Value: d.Name})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleOrderSlide godoc
// @Summary Move a slide within its session
// @Description Requires the X-CSRFToken header to match the csrftoken cookie.
// @Tags proceedings
// @Accept x-www-form-urlencoded
// @Produce json
// @Param X-CSRFToken header string true "csrf token"
// @Param slide_name formData string true "slide name"
// @Param order formData int true "new zero-based index"
// @Success 200 {object} OrderSlideResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /secr/proceedings/ajax/order-slide/ [post]
func (s *Server) handleOrderSlide(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	name := strings.TrimSpace(r.PostForm.Get("slide_name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "slide_name is required")
		return
	}
	order, err := strconv.Atoi(r.PostForm.Get("order"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "order must be an integer")
		return
	}

	slides, err := s.store.OrderSlide(r.Context(), name, order)
	if err != nil {
		s.storeError(w, "ordering slide", err)
		return
	}

	// order may have been clamped; report where the slide actually is.
	names := make([]string, len(slides))
	placed := order
	for i, sl := range slides {
		names[i] = sl.Name
		if sl.Name == name {
			placed = i
		}
	}
	ev := SlideOrderEvent{Type: "slide_order", Slide: name, Order: placed, Slides: names}
	if len(slides) > 0 {
		ev.Meeting, ev.Group = slides[0].Meeting, slides[0].Group
	}
	s.hub.Broadcast(ev)

	s.logger.Info("ordered slide",
		logging.Field{Key: "slide", Value: name},
		logging.Field{Key: "requested", Value: order},
		logging.Field{Key: "order", Value: placed})
	writeJSON(w, http.StatusOK, OrderSlideResponse{Slide: name, Order: placed, Slides: names})
}

func (s *Server) int64Param(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	v, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, name+" must be an integer")
		return 0, false
	}
	return v, true
}

func (s *Server) storeError(w http.ResponseWriter, action string, err error) {
	switch {
	case errors.Is(err, store.ErrPersonNotFound),
		errors.Is(err, store.ErrAreaNotFound),
		errors.Is(err, store.ErrSlideNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		s.logger.Warn(action, logging.Err(err))
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
