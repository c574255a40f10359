package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storydesk/internal/storytext"
)

// TextHandler exposes the story text utilities. None of them can fail once
// the request body is valid.
type TextHandler struct{}

func NewTextHandler() *TextHandler {
	return &TextHandler{}
}

func (h *TextHandler) Outlet(c *gin.Context) {
	var req OutletRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, OutletResponse{Outlet: storytext.OutletNameFromURL(req.URL)})
}

func (h *TextHandler) ReportedLink(c *gin.Context) {
	var req ReportedLinkRequest
	if !bindJSON(c, &req) {
		return
	}

	outlet := req.Outlet
	if outlet == "" {
		outlet = storytext.OutletNameFromURL(req.URL)
	}
	c.JSON(http.StatusOK, TextResponse{Text: storytext.InsertLinkOnReported(req.Text, outlet, req.URL)})
}

func (h *TextHandler) LeadLink(c *gin.Context) {
	var req PhraseLinkRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, TextResponse{Text: storytext.InsertLeadHyperlink(req.Text, req.URL)})
}

func (h *TextHandler) MiddleLink(c *gin.Context) {
	var req PhraseLinkRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, TextResponse{Text: storytext.InsertMiddleHyperlink(req.Text, req.URL)})
}

func (h *TextHandler) AlsoRead(c *gin.Context) {
	var req AlsoReadRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, TextResponse{Text: storytext.FixAlsoReadPlacement(req.Text, req.AlsoRead)})
}

func (h *TextHandler) PriceAction(c *gin.Context) {
	var req PriceActionRequest
	if !bindJSON(c, &req) {
		return
	}
	story := storytext.EnsureProperPriceActionPlacement(req.Story, req.PriceAction, req.ReadNext)
	c.JSON(http.StatusOK, gin.H{"story": story})
}

func (h *TextHandler) Preserve(c *gin.Context) {
	var req PreserveRequest
	if !bindJSON(c, &req) {
		return
	}

	story := storytext.PreserveHyperlinks(req.Existing, req.Candidate)
	c.JSON(http.StatusOK, PreserveResponse{
		Story:          story,
		Preserved:      story == req.Existing && req.Candidate != req.Existing,
		ExistingLinks:  storytext.CountLinks(req.Existing),
		CandidateLinks: storytext.CountLinks(req.Candidate),
	})
}

func bindJSON(c *gin.Context, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}
