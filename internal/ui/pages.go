package ui

import (
	"boatyard/internal/domain"
)

type pageKind int

const (
	pageSearch pageKind = iota
	pageBoat
	pageReview
	pageNewBoat
)

// page is one entry of the page stack. cursor is the review cursor on boat pages.
type page struct {
	kind     pageKind
	recordID string
	cursor   int
}

// pageFor resolves a navigation reference to a page
func pageFor(ref domain.PageReference) (page, bool) {
	switch {
	case ref.Type == domain.PageRecord && ref.ObjectName == domain.ObjectBoat:
		return page{kind: pageBoat, recordID: ref.RecordID}, true
	case ref.Type == domain.PageRecord && ref.ObjectName == domain.ObjectBoatReview:
		return page{kind: pageReview, recordID: ref.RecordID}, true
	case ref.Type == domain.PageObject && ref.ObjectName == domain.ObjectBoat && ref.Action == domain.ActionNew:
		return page{kind: pageNewBoat}, true
	}
	return page{}, false
}

// pageStack keeps the search page at the bottom; it can never be popped
type pageStack struct {
	pages []page
}

func newPageStack() *pageStack {
	return &pageStack{pages: []page{{kind: pageSearch}}}
}

func (s *pageStack) push(p page) {
	s.pages = append(s.pages, p)
}

// pop removes the top page and reports whether anything was removed
func (s *pageStack) pop() bool {
	if len(s.pages) <= 1 {
		return false
	}
	s.pages = s.pages[:len(s.pages)-1]
	return true
}

func (s *pageStack) top() *page {
	return &s.pages[len(s.pages)-1]
}

// below returns the page under the top one
func (s *pageStack) below() *page {
	if len(s.pages) < 2 {
		return nil
	}
	return &s.pages[len(s.pages)-2]
}

func (s *pageStack) depth() int {
	return len(s.pages)
}
