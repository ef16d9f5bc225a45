package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/toursite/internal/models"
)

// swapRequest names the two items whose positions are exchanged.
type swapRequest struct {
	IDA string `json:"id_a"`
	IDB string `json:"id_b"`
}

func parseSwap(c *fiber.Ctx) (swapRequest, error) {
	var req swapRequest
	if err := c.BodyParser(&req); err != nil {
		return req, badRequest("invalid request body")
	}
	if req.IDA == "" || req.IDB == "" {
		return req, badRequest("id_a and id_b are required")
	}
	return req, nil
}

// -------- tours --------

func (s *Server) adminListTours(c *fiber.Ctx) error {
	all, err := s.svc.Tours.All(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(nonNil(all))
}

func (s *Server) adminGetTour(c *fiber.Ctx) error {
	t, err := s.svc.Tours.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(t)
}

func (s *Server) adminCreateTour(c *fiber.Ctx) error {
	var in models.Tour
	if err := c.BodyParser(&in); err != nil {
		return badRequest("invalid request body")
	}
	t, err := s.svc.Tours.Create(c.UserContext(), &in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(t)
}

func (s *Server) adminUpdateTour(c *fiber.Ctx) error {
	var in models.Tour
	if err := c.BodyParser(&in); err != nil {
		return badRequest("invalid request body")
	}
	in.ID = c.Params("id")
	t, err := s.svc.Tours.Update(c.UserContext(), &in)
	if err != nil {
		return err
	}
	return c.JSON(t)
}

func (s *Server) adminDeleteTour(c *fiber.Ctx) error {
	if err := s.svc.Tours.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) adminSwapTours(c *fiber.Ctx) error {
	req, err := parseSwap(c)
	if err != nil {
		return err
	}
	if err := s.svc.Tours.Swap(c.UserContext(), req.IDA, req.IDB); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// -------- promotions --------

func (s *Server) adminListPromotions(c *fiber.Ctx) error {
	all, err := s.svc.Promotions.All(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(nonNil(all))
}

func (s *Server) adminGetPromotion(c *fiber.Ctx) error {
	p, err := s.svc.Promotions.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(p)
}

func (s *Server) adminCreatePromotion(c *fiber.Ctx) error {
	var in models.Promotion
	if err := c.BodyParser(&in); err != nil {
		return badRequest("invalid request body")
	}
	p, err := s.svc.Promotions.Create(c.UserContext(), &in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (s *Server) adminUpdatePromotion(c *fiber.Ctx) error {
	var in models.Promotion
	if err := c.BodyParser(&in); err != nil {
		return badRequest("invalid request body")
	}
	in.ID = c.Params("id")
	p, err := s.svc.Promotions.Update(c.UserContext(), &in)
	if err != nil {
		return err
	}
	return c.JSON(p)
}

func (s *Server) adminDeletePromotion(c *fiber.Ctx) error {
	if err := s.svc.Promotions.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) adminSwapPromotions(c *fiber.Ctx) error {
	req, err := parseSwap(c)
	if err != nil {
		return err
	}
	if err := s.svc.Promotions.Swap(c.UserContext(), req.IDA, req.IDB); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// -------- posts --------

func (s *Server) adminListPosts(c *fiber.Ctx) error {
	page, err := s.svc.Posts.List(c.UserContext(), listQuery(c), false)
	if err != nil {
		return err
	}
	return c.JSON(viewPage(page, func(p *models.Post) *models.Post { return p }))
}

func (s *Server) adminGetPost(c *fiber.Ctx) error {
	p, err := s.svc.Posts.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(p)
}

func (s *Server) adminCreatePost(c *fiber.Ctx) error {
	var in models.Post
	if err := c.BodyParser(&in); err != nil {
		return badRequest("invalid request body")
	}
	p, err := s.svc.Posts.Create(c.UserContext(), &in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (s *Server) adminUpdatePost(c *fiber.Ctx) error {
	var in models.Post
	if err := c.BodyParser(&in); err != nil {
		return badRequest("invalid request body")
	}
	in.ID = c.Params("id")
	p, err := s.svc.Posts.Update(c.UserContext(), &in)
	if err != nil {
		return err
	}
	return c.JSON(p)
}

func (s *Server) adminDeletePost(c *fiber.Ctx) error {
	if err := s.svc.Posts.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// -------- bookings --------

func (s *Server) adminListBookings(c *fiber.Ctx) error {
	all, err := s.svc.Bookings.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(nonNil(all))
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
