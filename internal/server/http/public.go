package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/toursite/internal/locale"
	"github.com/dmitrijs2005/toursite/internal/models"
)

func listQuery(c *fiber.Ctx) models.ListQuery {
	return models.ListQuery{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 0),
		Search:   c.Query("q"),
		Lang:     string(langOf(c)),
	}
}

type pageResponse[V any] struct {
	Items    []V `json:"items"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
	Pages    int `json:"pages"`
}

func viewPage[T, V any](p models.Page[T], view func(T) V) pageResponse[V] {
	out := pageResponse[V]{
		Items:    make([]V, 0, len(p.Items)),
		Page:     p.Page,
		PageSize: p.PageSize,
		Total:    p.Total,
		Pages:    p.Pages(),
	}
	for _, it := range p.Items {
		out.Items = append(out.Items, view(it))
	}
	return out
}

func (s *Server) listTours(c *fiber.Ctx) error {
	lang := langOf(c)
	page, err := s.svc.Tours.List(c.UserContext(), listQuery(c), true)
	if err != nil {
		return err
	}
	return c.JSON(viewPage(page, func(t *models.Tour) models.TourView { return t.View(lang) }))
}

func (s *Server) getTour(c *fiber.Ctx) error {
	t, err := s.svc.Tours.GetPublished(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(t.View(langOf(c)))
}

func (s *Server) listPosts(c *fiber.Ctx) error {
	lang := langOf(c)
	page, err := s.svc.Posts.List(c.UserContext(), listQuery(c), true)
	if err != nil {
		return err
	}
	return c.JSON(viewPage(page, func(p *models.Post) models.PostView { return p.View(lang) }))
}

func (s *Server) getPost(c *fiber.Ctx) error {
	p, err := s.svc.Posts.GetPublished(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(p.View(langOf(c)))
}

func (s *Server) listPromotions(c *fiber.Ctx) error {
	promos, err := s.svc.Promotions.Running(c.UserContext())
	if err != nil {
		return err
	}
	lang, now := langOf(c), s.now()
	out := make([]models.PromotionView, 0, len(promos))
	for _, p := range promos {
		out = append(out, p.View(lang, now))
	}
	return c.JSON(out)
}

type bookingResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func (s *Server) createBooking(c *fiber.Ctx) error {
	var in models.BookingInquiry
	if err := c.BodyParser(&in); err != nil {
		return badRequest("invalid request body")
	}
	lang := langOf(c)
	if in.Language == "" {
		in.Language = lang
	}

	b, err := s.svc.Bookings.Create(c.UserContext(), &in)
	if err != nil {
		return err
	}

	tourName := b.TourID
	if t, err := s.svc.Tours.Get(c.UserContext(), b.TourID); err == nil {
		tourName = t.Name.In(lang)
	}
	return c.Status(fiber.StatusCreated).JSON(bookingResponse{
		ID:      b.ID,
		Message: locale.Message(lang, locale.MsgBookingReceived, b.Name, tourName),
	})
}
