package web

import (
	"html/template"
	"net/url"
	"time"

	"newstracker/internal/domain/model"
)

const displayDateLayout = "Jan 2, 2006, 03:04 PM"

var templateFuncs = template.FuncMap{
	"formatDate": formatDate,
	"topicPath":  topicPath,
	"visitURL":   visitURL,
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(displayDateLayout)
}

func topicPath(topic model.Topic) string {
	return url.PathEscape(string(topic))
}

func visitURL(articleURL string) string {
	return "/visit?url=" + url.QueryEscape(articleURL)
}
