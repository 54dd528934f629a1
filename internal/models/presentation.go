package models

import (
	"encoding/json"
	"fmt"
)

type SlideType string

const (
	SlideTitle        SlideType = "title"
	SlideContent      SlideType = "content"
	SlideImage        SlideType = "image"
	SlideBulletPoints SlideType = "bullet_points"
	SlideTwoColumn    SlideType = "two_column"
)

// SlideBody is the per-kind payload of a slide. Exactly one concrete
// type is valid for a given SlideType.
type SlideBody interface {
	slideBody()
}

type TitleBody struct {
	Subtitle string
}

type ContentBody struct {
	Text string
}

type BulletPointsBody struct {
	Points []string
}

type TwoColumnBody struct {
	Column1 string
	Column2 string
}

type ImageBody struct {
	ImageURL string
}

func (TitleBody) slideBody()        {}
func (ContentBody) slideBody()      {}
func (BulletPointsBody) slideBody() {}
func (TwoColumnBody) slideBody()    {}
func (ImageBody) slideBody()        {}

// Slide is a tagged union over the supported slide kinds. The wire
// format stays flat for client compatibility ({type, title, content,
// bullet_points, column1, column2, image_url}); the tag decides which
// fields are read.
type Slide struct {
	Type  SlideType
	Title string
	Body  SlideBody
}

// slideWire is the flat JSON shape shared with clients and the queue.
type slideWire struct {
	Type         SlideType `json:"type"`
	Title        string    `json:"title"`
	Content      string    `json:"content,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	BulletPoints []string  `json:"bullet_points,omitempty"`
	Column1      string    `json:"column1,omitempty"`
	Column2      string    `json:"column2,omitempty"`
}

func (s *Slide) UnmarshalJSON(data []byte) error {
	var wire slideWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	s.Type = wire.Type
	s.Title = wire.Title

	switch wire.Type {
	case SlideTitle:
		s.Body = TitleBody{Subtitle: wire.Content}
	case SlideContent:
		s.Body = ContentBody{Text: wire.Content}
	case SlideBulletPoints:
		s.Body = BulletPointsBody{Points: wire.BulletPoints}
	case SlideTwoColumn:
		s.Body = TwoColumnBody{Column1: wire.Column1, Column2: wire.Column2}
	case SlideImage:
		s.Body = ImageBody{ImageURL: wire.ImageURL}
	default:
		return fmt.Errorf("unknown slide type: %q", wire.Type)
	}
	return nil
}

func (s Slide) MarshalJSON() ([]byte, error) {
	wire := slideWire{
		Type:  s.Type,
		Title: s.Title,
	}
	switch body := s.Body.(type) {
	case TitleBody:
		wire.Content = body.Subtitle
	case ContentBody:
		wire.Content = body.Text
	case BulletPointsBody:
		wire.BulletPoints = body.Points
	case TwoColumnBody:
		wire.Column1 = body.Column1
		wire.Column2 = body.Column2
	case ImageBody:
		wire.ImageURL = body.ImageURL
	case nil:
		return nil, fmt.Errorf("slide %q has no body", s.Title)
	}
	return json.Marshal(wire)
}

// Validate checks that the slide carries the fields its kind requires.
func (s Slide) Validate() error {
	if s.Title == "" {
		return fmt.Errorf("slide title is required")
	}
	switch body := s.Body.(type) {
	case TitleBody, ContentBody, ImageBody:
		return nil
	case BulletPointsBody:
		if len(body.Points) == 0 {
			return fmt.Errorf("bullet_points slide %q has no bullet points", s.Title)
		}
	case TwoColumnBody:
		if body.Column1 == "" && body.Column2 == "" {
			return fmt.Errorf("two_column slide %q has no column content", s.Title)
		}
	default:
		return fmt.Errorf("unknown slide type: %q", s.Type)
	}
	return nil
}

// Presentation is the full deck specification handed to the worker.
type Presentation struct {
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Slides []Slide `json:"slides"`
	Theme  string  `json:"theme,omitempty"`
}

// Validate checks structural validity before the spec is queued.
func (p *Presentation) Validate() error {
	if p.Title == "" {
		return fmt.Errorf("presentation title is required")
	}
	if p.Author == "" {
		return fmt.Errorf("presentation author is required")
	}
	if len(p.Slides) == 0 {
		return fmt.Errorf("presentation must contain at least one slide")
	}
	for i, slide := range p.Slides {
		if err := slide.Validate(); err != nil {
			return fmt.Errorf("slide %d: %w", i, err)
		}
	}
	return nil
}
