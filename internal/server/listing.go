package server

import (
	"net/http"
	"strings"

	listingdomain "github.com/LangoJordan/annonceluzy/internal/listing/domain"
	"github.com/LangoJordan/annonceluzy/pkg/db/pagination"
	"github.com/LangoJordan/annonceluzy/pkg/tenantctx"
	"github.com/gin-gonic/gin"
)

type CreateListingRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
}

func (s *Server) ListListings(c *gin.Context) {
	tenant, ok := tenantctx.FromContext(c.Request.Context())
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}

	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.listings.List(c.Request.Context(), listingdomain.ListRequest{
		AgencyID:   tenant.AgencyID,
		SpaceID:    tenant.SpaceID,
		Pagination: page,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) CreateListing(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	tenant, ok := tenantctx.FromContext(c.Request.Context())
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}

	var req CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		AbortWithError(c, newValidationError("title", "required", "title is required"))
		return
	}
	if req.PriceCents < 0 {
		AbortWithError(c, newValidationError("price_cents", "invalid_price", "price must not be negative"))
		return
	}

	listing := &listingdomain.Listing{
		ID:          s.genID.Generate(),
		AgencyID:    tenant.AgencyID,
		AuthorID:    principal.ID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Published:   true,
	}
	if tenant.SpaceID != 0 {
		spaceID := tenant.SpaceID
		listing.SpaceID = &spaceID
	}

	if err := s.listings.Insert(c.Request.Context(), listing); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, listing)
}
