package server

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/raysh454/secrglue/internal/logging"
	"github.com/raysh454/secrglue/internal/store"
)

// Each page carries the element ids and classes the page scripts look for.

const layoutTemplate = `{{define "layout"}}<!DOCTYPE html>
<html>
<head>
    <title>Secretariat - {{.Title}}</title>
</head>
<body>
    <ul id="list-nav">
        <li id="nav-areas"><a href="/secr/areas/">Areas</a></li>
        <li id="nav-groups"><a href="/secr/groups/add/">Groups</a></li>
        <li id="nav-proceedings"><a href="/secr/proceedings/">Proceedings</a></li>
    </ul>
    <h1>{{.Title}}</h1>
    {{template "content" .}}
</body>
</html>{{end}}`

const areasTemplate = `{{define "content"}}
    <ul id="areas-button-list"></ul>
    <table id="areas-list-table" class="full-width">
        <thead><tr><th>Acronym</th><th>Name</th></tr></thead>
        <tbody>
        {{range .Areas}}<tr id="area-{{.ID}}"{{if .Active}} class="active"{{end}}><td>{{.Acronym}}</td><td>{{.Name}}</td></tr>
        {{end}}</tbody>
    </table>
    <form id="area-director-form">
        <input type="hidden" name="csrfmiddlewaretoken" value="{{.Token}}">
        <input type="text" id="id_name" name="name" class="name-autocomplete">
        <select id="id_email" name="email"><option value="">--</option></select>
    </form>
{{end}}`

const groupAddTemplate = `{{define "content"}}
    <form id="group-add-form">
        <input type="hidden" name="csrfmiddlewaretoken" value="{{.Token}}">
        <input type="text" id="id_acronym" name="acronym">
        <select id="id_primary_area" name="primary_area">
            <option value="">--</option>
            {{range .Areas}}{{if .Active}}<option value="{{.ID}}">{{.Acronym}}</option>{{end}}
            {{end}}</select>
        <select id="id_primary_area_director" name="primary_area_director"><option value="">--</option></select>
    </form>
{{end}}`

const proceedingsTemplate = `{{define "content"}}
    <ul id="proceedings-button-list"><li><a href="/secr/proceedings/upload/">Upload</a></li></ul>
    <ul id="proceedings-meeting-buttons"></ul>
    <table id="proceedings-list-table" class="secretariat">
        <thead><tr><th>Meeting</th></tr></thead>
        <tbody>
        {{range $i, $m := .Meetings}}<tr id="meeting-{{$m}}"{{if eq $i 0}} class="open"{{end}}><td><a href="/secr/proceedings/upload/?meeting={{$m}}">IETF {{$m}}</a></td></tr>
        {{end}}</tbody>
    </table>
{{end}}`

const uploadTemplate = `{{define "content"}}
    <form id="proceedings-upload-form">
        <input type="hidden" name="csrfmiddlewaretoken" value="{{.Token}}">
        <input type="text" id="id_group_name" name="group_name" value="{{.Group}}">
        <select id="id_material_type" name="material_type">
            <option value="slides">Presentation</option>
            <option value="minutes">Minutes</option>
            <option value="agenda">Agenda</option>
        </select>
        <input type="text" id="id_slide_name" name="slide_name">
        <div id="id_file_help"></div>
        <input type="file" id="id_file" name="file">
    </form>
    <table id="proceedings-upload-table"><tr><td>IETF {{.Meeting}} {{.Group}}</td></tr></table>
    <table id="slides" class="sortable">
        <thead><tr><th>Title</th></tr></thead>
        <tbody>
        {{range .Slides}}<tr id="slide-{{.ID}}"><td>{{.Title}}</td><td class="hidden">{{.Name}}</td></tr>
        {{end}}</tbody>
    </table>
{{end}}`

type pageRenderer struct {
	areas       *template.Template
	groupAdd    *template.Template
	proceedings *template.Template
	upload      *template.Template
}

func newPageRenderer() (*pageRenderer, error) {
	parse := func(content string) (*template.Template, error) {
		t, err := template.New("page").Parse(layoutTemplate)
		if err != nil {
			return nil, err
		}
		return t.Parse(content)
	}
	var pr pageRenderer
	var err error
	if pr.areas, err = parse(areasTemplate); err != nil {
		return nil, err
	}
	if pr.groupAdd, err = parse(groupAddTemplate); err != nil {
		return nil, err
	}
	if pr.proceedings, err = parse(proceedingsTemplate); err != nil {
		return nil, err
	}
	if pr.upload, err = parse(uploadTemplate); err != nil {
		return nil, err
	}
	return &pr, nil
}

type pageData struct {
	Title    string
	Token    string
	Areas    []store.Area
	Meetings []string
	Meeting  string
	Group    string
	Slides   []store.Slide
}

func (s *Server) render(w http.ResponseWriter, t *template.Template, data pageData) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		s.logger.Error("rendering page", logging.Field{Key: "title", Value: data.Title}, logging.Err(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleAreasPage(w http.ResponseWriter, r *http.Request) {
	areas, err := s.store.ListAreas(r.Context())
	if err != nil {
		s.storeError(w, "listing areas", err)
		return
	}
	s.render(w, s.pages.areas, pageData{Title: "Areas", Token: tokenFrom(r.Context()), Areas: areas})
}

func (s *Server) handleGroupAddPage(w http.ResponseWriter, r *http.Request) {
	areas, err := s.store.ListAreas(r.Context())
	if err != nil {
		s.storeError(w, "listing areas", err)
		return
	}
	s.render(w, s.pages.groupAdd, pageData{Title: "Add Group", Token: tokenFrom(r.Context()), Areas: areas})
}

func (s *Server) handleProceedingsPage(w http.ResponseWriter, r *http.Request) {
	meetings, err := s.store.ListMeetings(r.Context())
	if err != nil {
		s.storeError(w, "listing meetings", err)
		return
	}
	s.render(w, s.pages.proceedings, pageData{Title: "Proceedings", Token: tokenFrom(r.Context()), Meetings: meetings})
}

func (s *Server) handleUploadPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	meeting, group := q.Get("meeting"), q.Get("group")
	if meeting == "" {
		meeting = "120"
	}
	if group == "" {
		group = "httpbis"
	}
	slides, err := s.store.ListSlides(r.Context(), meeting, group)
	if err != nil {
		s.storeError(w, "listing slides", err)
		return
	}
	s.render(w, s.pages.upload, pageData{
		Title:   "Upload Material",
		Token:   tokenFrom(r.Context()),
		Meeting: meeting,
		Group:   group,
		Slides:  slides,
	})
}
