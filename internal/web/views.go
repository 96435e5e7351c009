package web

import (
	"strconv"

	"github.com/garrett-1/portfolio/internal/carousel"
	"github.com/garrett-1/portfolio/internal/portfolio"
	"github.com/garrett-1/portfolio/internal/session"
)

type pageView struct {
	Base       string
	Profile    portfolio.Profile
	Headline   []headlineView
	Nav        navView
	Experience experienceView
	Projects   []portfolio.Project
	Contact    portfolio.Contact
	Footer     string
	HasResume  bool
}

type headlineView struct {
	Index  int
	Prefix string
	Text   string
	URL    string
}

type navView struct {
	Name  string
	Items []navItem
}

type navItem struct {
	Name   portfolio.Section
	Label  string
	Active bool
	URL    string
}

type experienceView struct {
	carousel.View[portfolio.Experience]
	PrevURL string
	NextURL string
}

func (s *Server) page(sess *session.Session) pageView {
	headline := make([]headlineView, 0, len(s.content.Profile.Headline))
	for i, line := range s.content.Profile.Headline {
		headline = append(headline, headlineView{
			Index:  i,
			Prefix: line.Prefix,
			Text:   line.Text,
			URL:    s.url("reveal", strconv.Itoa(i)),
		})
	}
	return pageView{
		Base:       s.base,
		Profile:    s.content.Profile,
		Headline:   headline,
		Nav:        s.nav(sess),
		Experience: s.experience(sess),
		Projects:   s.content.Projects,
		Contact:    s.content.Contact,
		Footer:     s.content.Footer,
		HasResume:  s.resumePath != "",
	}
}

func (s *Server) nav(sess *session.Session) navView {
	active := sess.Section()
	items := make([]navItem, 0, len(portfolio.Sections))
	for _, sec := range portfolio.Sections {
		items = append(items, navItem{
			Name:   sec,
			Label:  sec.Label(),
			Active: sec == active,
			URL:    s.url("s", sess.ID, "section", string(sec)),
		})
	}
	return navView{Name: s.content.Profile.Name, Items: items}
}

func (s *Server) experience(sess *session.Session) experienceView {
	return experienceView{
		View:    sess.Experience(),
		PrevURL: s.url("s", sess.ID, "experience", "prev"),
		NextURL: s.url("s", sess.ID, "experience", "next"),
	}
}
