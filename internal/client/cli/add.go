package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/toursite/internal/locale"
	"github.com/dmitrijs2005/toursite/internal/models"
	"github.com/dmitrijs2005/toursite/internal/reorder"
)

// askText reads one value per supported language. English is required;
// the others may be left empty and fall back to English when displayed.
func (a *App) askText(field string, multiline bool) (locale.LocalizedText, error) {
	var t locale.LocalizedText
	for _, l := range locale.Supported() {
		prompt := fmt.Sprintf("%s (%s)", field, l)
		if l != locale.Primary {
			prompt += ", empty to skip"
		}

		var (
			v   string
			err error
		)
		if multiline {
			v, err = a.askMultiline(prompt)
		} else {
			v, err = a.ask(prompt)
		}
		if err != nil {
			return t, err
		}
		if l == locale.Primary && v == "" {
			a.say(field, "is required in", l)
			return t, locale.ErrPrimaryMissing
		}
		t = t.With(l, v)
	}
	return t, nil
}

func (a *App) askYesNo(prompt string) (bool, error) {
	v, err := a.ask(prompt + " (y/N)")
	if err != nil {
		return false, err
	}
	v = strings.ToLower(v)
	return v == "y" || v == "yes", nil
}

// AddTour creates a tour from interactive input. New tours go to the end of
// the list.
func (a *App) AddTour(ctx context.Context) error {
	name, err := a.askText("Name", false)
	if err != nil {
		return err
	}
	summary, err := a.askText("Summary", false)
	if err != nil {
		return err
	}
	description, err := a.askText("Description", true)
	if err != nil {
		return err
	}

	amount, err := a.ask("Price amount")
	if err != nil {
		return err
	}
	price, err := strconv.ParseFloat(strings.ReplaceAll(amount, ",", ""), 64)
	if err != nil {
		a.say("Invalid amount:", amount)
		return err
	}
	currency, err := a.ask("Currency, empty for " + models.DefaultCurrency)
	if err != nil {
		return err
	}
	if currency == "" {
		currency = models.DefaultCurrency
	}

	days, err := a.ask("Duration in days")
	if err != nil {
		return err
	}
	duration, err := strconv.Atoi(days)
	if err != nil {
		a.say("Invalid duration:", days)
		return err
	}

	published, err := a.askYesNo("Publish now?")
	if err != nil {
		return err
	}

	t, err := a.api.CreateTour(ctx, &models.Tour{
		Name:         name,
		Summary:      summary,
		Description:  description,
		Price:        models.Price{Amount: price, Currency: strings.ToUpper(currency)},
		DurationDays: duration,
		Published:    published,
	})
	if err != nil {
		a.say("Error:", err)
		return err
	}
	a.sayf("Created tour %s (%s)", t.Name.In(a.language()), t.Slug)

	if err := a.tours.Load(ctx); err != nil && !errors.Is(err, reorder.ErrMoveInFlight) {
		return err
	}
	return nil
}

// AddPost creates a blog post from interactive input.
func (a *App) AddPost(ctx context.Context) error {
	title, err := a.askText("Title", false)
	if err != nil {
		return err
	}
	excerpt, err := a.askText("Excerpt", false)
	if err != nil {
		return err
	}
	body, err := a.askText("Body", true)
	if err != nil {
		return err
	}
	published, err := a.askYesNo("Publish now?")
	if err != nil {
		return err
	}

	p, err := a.api.CreatePost(ctx, &models.Post{Title: title, Excerpt: excerpt, Body: body, Published: published})
	if err != nil {
		a.say("Error:", err)
		return err
	}
	a.sayf("Created post %s (%s)", p.Title.In(a.language()), p.Slug)
	return nil
}
