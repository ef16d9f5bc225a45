package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/toursite/internal/common"
	"github.com/dmitrijs2005/toursite/internal/locale"
)

const localsLang = "lang"

// localeMiddleware picks the display language: the lang query parameter,
// then the lang cookie, then Accept-Language, then English. An explicit,
// supported query parameter is remembered in the cookie.
func localeMiddleware(c *fiber.Ctx) error {
	lang, ok := locale.Parse(c.Query(common.LanguageParam))
	if ok {
		c.Cookie(&fiber.Cookie{
			Name:     common.LanguageCookieName,
			Value:    string(lang),
			Path:     "/",
			MaxAge:   365 * 24 * 3600,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	} else if lang, ok = locale.Parse(c.Cookies(common.LanguageCookieName)); !ok {
		lang = locale.Negotiate(c.Get(fiber.HeaderAcceptLanguage))
	}

	c.Locals(localsLang, lang)
	c.Set(fiber.HeaderContentLanguage, string(lang))
	c.Vary(fiber.HeaderAcceptLanguage)
	return c.Next()
}

func langOf(c *fiber.Ctx) locale.Language {
	if l, ok := c.Locals(localsLang).(locale.Language); ok {
		return l
	}
	return locale.Primary
}

func (s *Server) requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	if err != nil {
		// Run the error handler now so the logged status is the final one.
		if herr := c.App().ErrorHandler(c, err); herr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}
	s.logger.Debug(c.UserContext(), "request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"duration", time.Since(start),
	)
	return nil
}
