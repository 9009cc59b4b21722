package whatsapp

import (
	"strings"

	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/models"
)

// Encode translates template content into the platform's component array.
//
// The header is emitted only when present, the body always, the footer only
// when it has text, and every button gets a BUTTONS component of its own.
// Media headers travel as upload handles, which the platform does not echo
// back reliably, so Decode(Encode(c)) is not guaranteed to restore them.
func Encode(c models.TemplateContent) ([]Component, error) {
	if strings.TrimSpace(c.Body.Text) == "" {
		return nil, encodingError("body text is required")
	}

	components := make([]Component, 0, 3+len(c.Buttons))

	header, ok, err := encodeHeader(c.Header)
	if err != nil {
		return nil, err
	}
	if ok {
		components = append(components, header)
	}

	samples := c.Body.Example
	if len(samples) == 0 {
		samples = []string{c.Body.Text}
	}
	components = append(components, Component{
		Type:    ComponentBody,
		Text:    c.Body.Text,
		Example: &ComponentExample{BodyText: SampleRows{samples}},
	})

	if c.Footer.Text != "" {
		components = append(components, Component{Type: ComponentFooter, Text: c.Footer.Text})
	}

	for i, b := range c.Buttons {
		button, err := encodeButton(b)
		if err != nil {
			return nil, encodingError("button %d: %v", i, err)
		}
		components = append(components, Component{Type: ComponentButtons, Buttons: []Button{button}})
	}

	return components, nil
}

func encodeHeader(h models.TemplateHeader) (Component, bool, error) {
	switch h.Type {
	case "", models.HeaderNone:
		return Component{}, false, nil
	case models.HeaderText:
		if h.Text == "" {
			return Component{}, false, encodingError("text header requires text")
		}
		comp := Component{Type: ComponentHeader, Format: "text", Text: h.Text}
		if len(h.Example) > 0 {
			comp.Example = &ComponentExample{HeaderText: h.Example}
		}
		return comp, true, nil
	case models.HeaderImage, models.HeaderVideo, models.HeaderDocument:
		if h.MediaReference == "" {
			return Component{}, false, encodingError("%s header requires a media reference", strings.ToLower(string(h.Type)))
		}
		return Component{
			Type:    ComponentHeader,
			Format:  strings.ToLower(string(h.Type)),
			Example: &ComponentExample{HeaderHandle: []string{h.MediaReference}},
		}, true, nil
	default:
		return Component{}, false, encodingError("unknown header type %q", h.Type)
	}
}

func encodeButton(b models.TemplateButton) (Button, error) {
	if err := b.Validate(); err != nil {
		return Button{}, err
	}
	switch b.Type {
	case models.ButtonQuickReply:
		return Button{Type: string(b.Type), Text: b.Text}, nil
	case models.ButtonURL:
		example := b.Example
		if len(example) == 0 {
			example = []string{b.URL}
		}
		return Button{Type: string(b.Type), Text: b.Text, URL: b.URL, Example: example}, nil
	case models.ButtonPhoneNumber:
		return Button{Type: string(b.Type), Text: b.Text, PhoneNumber: b.PhoneNumber}, nil
	default:
		return Button{}, encodingError("unknown button type %q", b.Type)
	}
}

// Decode translates a platform component array into template content.
//
// Components may come in any order and any of them may be missing: a missing
// header decodes to NONE, a missing body or footer to empty text and missing
// buttons to an empty list. Component types the local model does not carry
// are skipped. Unknown header formats and button types are errors.
func Decode(components []Component) (models.TemplateContent, error) {
	content := models.TemplateContent{
		Header:  models.NoHeader(),
		Buttons: []models.TemplateButton{},
	}

	var seenHeader, seenBody, seenFooter bool
	for _, comp := range components {
		switch strings.ToUpper(comp.Type) {
		case ComponentHeader:
			if seenHeader {
				continue
			}
			seenHeader = true
			header, err := decodeHeader(comp)
			if err != nil {
				return models.TemplateContent{}, err
			}
			content.Header = header
		case ComponentBody:
			if seenBody {
				continue
			}
			seenBody = true
			content.Body = models.TemplateBody{Text: comp.Text}
			if comp.Example != nil && len(comp.Example.BodyText) > 0 && len(comp.Example.BodyText[0]) > 0 {
				content.Body.Example = comp.Example.BodyText[0]
			}
		case ComponentFooter:
			if seenFooter {
				continue
			}
			seenFooter = true
			content.Footer = models.TemplateFooter{Text: comp.Text}
		case ComponentButtons:
			for _, b := range comp.Buttons {
				button, err := decodeButton(b)
				if err != nil {
					return models.TemplateContent{}, err
				}
				content.Buttons = append(content.Buttons, button)
			}
		}
	}

	return content, nil
}

func decodeHeader(comp Component) (models.TemplateHeader, error) {
	format := models.HeaderType(strings.ToUpper(comp.Format))
	switch format {
	case "", models.HeaderText:
		header := models.TextHeader(comp.Text)
		if comp.Example != nil && len(comp.Example.HeaderText) > 0 {
			header.Example = comp.Example.HeaderText
		}
		return header, nil
	case models.HeaderImage, models.HeaderVideo, models.HeaderDocument:
		var reference string
		if comp.Example != nil && len(comp.Example.HeaderHandle) > 0 {
			reference = comp.Example.HeaderHandle[0]
		}
		return models.MediaHeader(format, reference), nil
	default:
		return models.TemplateHeader{}, decodingError("unsupported header format %q", comp.Format)
	}
}

func decodeButton(b Button) (models.TemplateButton, error) {
	switch kind := models.ButtonType(strings.ToUpper(b.Type)); kind {
	case models.ButtonQuickReply:
		return models.TemplateButton{Type: kind, Text: b.Text}, nil
	case models.ButtonURL:
		return models.TemplateButton{Type: kind, Text: b.Text, URL: b.URL, Example: b.Example}, nil
	case models.ButtonPhoneNumber:
		return models.TemplateButton{Type: kind, Text: b.Text, PhoneNumber: b.PhoneNumber}, nil
	default:
		return models.TemplateButton{}, decodingError("unsupported button type %q", b.Type)
	}
}
