package render

import (
	"time"

	"github.com/kapu/busan-tour-bot-go/internal/constants"
	"github.com/kapu/busan-tour-bot-go/internal/domain"
	"github.com/kapu/busan-tour-bot-go/internal/service/photo"
)

var cardPalette = [...]string{
	"linear-gradient(135deg, #667eea 0%, #764ba2 100%)",
	"linear-gradient(135deg, #f093fb 0%, #f5576c 100%)",
	"linear-gradient(135deg, #4facfe 0%, #00f2fe 100%)",
	"linear-gradient(135deg, #43e97b 0%, #38f9d7 100%)",
	"linear-gradient(135deg, #fa709a 0%, #fee140 100%)",
	"linear-gradient(135deg, #a8edea 0%, #fed6e3 100%)",
}

type Style struct {
	Background     string
	AnimationDelay time.Duration
}

// StyleFor derives a card's look from its position in the batch.
func StyleFor(index int) Style {
	if index < 0 {
		index = 0
	}
	return Style{
		Background:     cardPalette[index%len(cardPalette)],
		AnimationDelay: time.Duration(index) * constants.Render.AnimationStep,
	}
}

// Visual describes what a card currently shows.
type Visual struct {
	ShowPlaceholder bool
	ShowPhoto       bool
	ShowFallback    bool
	Icon            string
	Background      string
	FadeIn          time.Duration
	FadeDelay       time.Duration
}

type Card struct {
	Index      int
	Attraction domain.Attraction
	ImageURL   string
	Icon       string
	Style      Style

	machine *LoadStateMachine
}

func (c *Card) Status() LoadStatus {
	if c.machine == nil {
		return StatusPending
	}
	return c.machine.Status()
}

// Outcome reports the status together with what settled it.
func (c *Card) Outcome() (LoadStatus, Trigger) {
	if c.machine == nil {
		return StatusPending, TriggerLoad
	}
	return c.machine.Outcome()
}

func (c *Card) Done() <-chan struct{} {
	return c.machine.Done()
}

func (c *Card) Visual() Visual {
	v := Visual{
		Icon:       c.Icon,
		Background: c.Style.Background,
	}
	switch c.Status() {
	case StatusLoaded:
		v.ShowPhoto = true
		v.FadeIn = constants.Render.FadeDuration
		v.FadeDelay = constants.Render.FadeStartDelay
	case StatusFailed:
		v.ShowFallback = true
		v.FadeIn = constants.Render.FadeDuration
	default:
		v.ShowPlaceholder = true
	}
	return v
}

func newCard(index int, attraction domain.Attraction, imageURL string) *Card {
	return &Card{
		Index:      index,
		Attraction: attraction,
		ImageURL:   imageURL,
		Icon:       photo.FallbackIcon(attraction.Category),
		Style:      StyleFor(index),
	}
}
