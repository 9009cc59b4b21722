package whatsapp

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/models"
)

func sampleContent() models.TemplateContent {
	return models.TemplateContent{
		Header: models.TextHeader("Order {{1}}", "#1042"),
		Body: models.TemplateBody{
			Text:    "Hi {{1}}, your order ships on {{2}}.",
			Example: []string{"Asha", "Monday"},
		},
		Footer: models.TemplateFooter{Text: "Reply STOP to opt out"},
		Buttons: []models.TemplateButton{
			{Type: models.ButtonQuickReply, Text: "Thanks"},
			{Type: models.ButtonURL, Text: "Track", URL: "https://shop.example/track/{{1}}", Example: []string{"https://shop.example/track/1042"}},
			{Type: models.ButtonPhoneNumber, Text: "Call us", PhoneNumber: "+919812345678"},
		},
	}
}

func TestEncodeComponentOrderAndShape(t *testing.T) {
	components, err := Encode(sampleContent())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	wantTypes := []string{ComponentHeader, ComponentBody, ComponentFooter, ComponentButtons, ComponentButtons, ComponentButtons}
	if len(components) != len(wantTypes) {
		t.Fatalf("got %d components, want %d", len(components), len(wantTypes))
	}
	for i, want := range wantTypes {
		if components[i].Type != want {
			t.Errorf("component %d: got type %s, want %s", i, components[i].Type, want)
		}
	}

	header := components[0]
	if header.Format != "text" || header.Text != "Order {{1}}" {
		t.Errorf("header: got format=%q text=%q", header.Format, header.Text)
	}
	if header.Example == nil || !reflect.DeepEqual(header.Example.HeaderText, []string{"#1042"}) {
		t.Errorf("header example: got %+v", header.Example)
	}

	body := components[1]
	if !reflect.DeepEqual(body.Example.BodyText, SampleRows{{"Asha", "Monday"}}) {
		t.Errorf("body example: got %v", body.Example.BodyText)
	}

	for i, comp := range components[3:] {
		if len(comp.Buttons) != 1 {
			t.Errorf("buttons component %d: got %d buttons, want 1", i, len(comp.Buttons))
		}
	}
	if got := components[5].Buttons[0].PhoneNumber; got != "+919812345678" {
		t.Errorf("phone button: got %q", got)
	}
	if components[3].Buttons[0].URL != "" || components[3].Buttons[0].Example != nil {
		t.Errorf("quick reply button carries url fields: %+v", components[3].Buttons[0])
	}
}

func TestEncodeWireFormat(t *testing.T) {
	components, err := Encode(models.TemplateContent{
		Body:    models.TemplateBody{Text: "Hello"},
		Buttons: []models.TemplateButton{{Type: models.ButtonPhoneNumber, Text: "Call", PhoneNumber: "+15550001111"}},
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	raw, err := json.Marshal(components)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `[{"type":"BODY","text":"Hello","example":{"body_text":[["Hello"]]}},` +
		`{"type":"BUTTONS","buttons":[{"type":"PHONE_NUMBER","text":"Call","phone_number":"+15550001111"}]}]`
	if string(raw) != want {
		t.Errorf("got  %s\nwant %s", raw, want)
	}
}

func TestEncodeOmitsOptionalComponents(t *testing.T) {
	components, err := Encode(models.TemplateContent{
		Header: models.NoHeader(),
		Body:   models.TemplateBody{Text: "Plain body"},
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(components) != 1 || components[0].Type != ComponentBody {
		t.Fatalf("got %+v, want a single BODY component", components)
	}
}

func TestEncodeMediaHeader(t *testing.T) {
	components, err := Encode(models.TemplateContent{
		Header: models.MediaHeader(models.HeaderImage, "4::aW1hZ2U="),
		Body:   models.TemplateBody{Text: "See attached"},
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	header := components[0]
	if header.Format != "image" {
		t.Errorf("got format %q, want image", header.Format)
	}
	if header.Text != "" {
		t.Errorf("media header carries text %q", header.Text)
	}
	if !reflect.DeepEqual(header.Example.HeaderHandle, []string{"4::aW1hZ2U="}) {
		t.Errorf("got handles %v", header.Example.HeaderHandle)
	}
}

func TestEncodeURLButtonExampleFallback(t *testing.T) {
	components, err := Encode(models.TemplateContent{
		Body:    models.TemplateBody{Text: "Visit"},
		Buttons: []models.TemplateButton{{Type: models.ButtonURL, Text: "Open", URL: "https://example.com"}},
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got := components[1].Buttons[0].Example
	if !reflect.DeepEqual(got, []string{"https://example.com"}) {
		t.Errorf("got example %v, want the url itself", got)
	}
}

func TestEncodeRejectsInvalidContent(t *testing.T) {
	tests := []struct {
		name    string
		content models.TemplateContent
	}{
		{"empty body", models.TemplateContent{Body: models.TemplateBody{Text: ""}}},
		{"whitespace body", models.TemplateContent{Body: models.TemplateBody{Text: "   "}}},
		{"media header without reference", models.TemplateContent{
			Header: models.MediaHeader(models.HeaderVideo, ""),
			Body:   models.TemplateBody{Text: "x"},
		}},
		{"unknown header type", models.TemplateContent{
			Header: models.TemplateHeader{Type: "LOCATION"},
			Body:   models.TemplateBody{Text: "x"},
		}},
		{"url button without url", models.TemplateContent{
			Body:    models.TemplateBody{Text: "x"},
			Buttons: []models.TemplateButton{{Type: models.ButtonURL, Text: "Go"}},
		}},
		{"unknown button type", models.TemplateContent{
			Body:    models.TemplateBody{Text: "x"},
			Buttons: []models.TemplateButton{{Type: "COPY_CODE", Text: "Copy"}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tt.content)
			if !errors.Is(err, ErrEncoding) {
				t.Fatalf("got %v, want ErrEncoding", err)
			}
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	content, err := Decode(nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if content.Header.Type != models.HeaderNone {
		t.Errorf("header: got %q, want NONE", content.Header.Type)
	}
	if content.Body.Text != "" || content.Footer.Text != "" {
		t.Errorf("got body=%q footer=%q, want empty", content.Body.Text, content.Footer.Text)
	}
	if content.Buttons == nil || len(content.Buttons) != 0 {
		t.Errorf("got buttons %v, want empty non-nil slice", content.Buttons)
	}
}

func TestDecodeOutOfOrderAndCaseInsensitive(t *testing.T) {
	components := []Component{
		{Type: "buttons", Buttons: []Button{{Type: "quick_reply", Text: "Yes"}}},
		{Type: "FOOTER", Text: "footer"},
		{Type: "BODY", Text: "body {{1}}", Example: &ComponentExample{BodyText: SampleRows{{"v"}}}},
		{Type: "HEADER", Format: "Document", Example: &ComponentExample{HeaderHandle: []string{"h1", "h2"}}},
		{Type: "BUTTONS", Buttons: []Button{{Type: "URL", Text: "Site", URL: "https://x.example"}}},
	}

	content, err := Decode(components)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if content.Header.Type != models.HeaderDocument || content.Header.MediaReference != "h1" {
		t.Errorf("header: got %+v", content.Header)
	}
	if content.Body.Text != "body {{1}}" || !reflect.DeepEqual(content.Body.Example, []string{"v"}) {
		t.Errorf("body: got %+v", content.Body)
	}
	if content.Footer.Text != "footer" {
		t.Errorf("footer: got %q", content.Footer.Text)
	}
	if len(content.Buttons) != 2 || content.Buttons[0].Type != models.ButtonQuickReply || content.Buttons[1].URL != "https://x.example" {
		t.Errorf("buttons: got %+v", content.Buttons)
	}
}

func TestDecodeHeaderWithoutFormatIsText(t *testing.T) {
	content, err := Decode([]Component{{Type: ComponentHeader, Text: "Hello"}})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if content.Header.Type != models.HeaderText || content.Header.Text != "Hello" {
		t.Errorf("got %+v", content.Header)
	}
}

func TestDecodeMediaHeaderWithoutHandle(t *testing.T) {
	// approved templates are listed without their upload handles
	content, err := Decode([]Component{
		{Type: ComponentHeader, Format: "IMAGE"},
		{Type: ComponentBody, Text: "body"},
	})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if content.Header.Type != models.HeaderImage {
		t.Errorf("got header type %q, want IMAGE", content.Header.Type)
	}
	if content.Header.MediaReference != "" {
		t.Errorf("got media reference %q, want empty", content.Header.MediaReference)
	}
}

func TestDecodeRejectsUnsupportedVariants(t *testing.T) {
	tests := []struct {
		name       string
		components []Component
	}{
		{"header format", []Component{{Type: ComponentHeader, Format: "LOCATION"}}},
		{"button type", []Component{{Type: ComponentButtons, Buttons: []Button{{Type: "OTP", Text: "Copy"}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.components); !errors.Is(err, ErrDecoding) {
				t.Fatalf("got %v, want ErrDecoding", err)
			}
		})
	}
}

func TestDecodeSkipsUnmodeledComponents(t *testing.T) {
	components := []Component{
		{Type: "LIMITED_TIME_OFFER"},
		{Type: ComponentBody, Text: "Offer ends soon"},
		{Type: "CAROUSEL"},
		{Type: ComponentFooter, Text: "Reply STOP to opt out"},
	}

	content, err := Decode(components)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if content.Body.Text != "Offer ends soon" {
		t.Errorf("got body %q, want %q", content.Body.Text, "Offer ends soon")
	}
	if content.Footer.Text != "Reply STOP to opt out" {
		t.Errorf("got footer %q", content.Footer.Text)
	}
	if content.Header.Type != models.HeaderNone {
		t.Errorf("got header %s, want NONE", content.Header.Type)
	}
	if len(content.Buttons) != 0 {
		t.Errorf("got %d buttons, want 0", len(content.Buttons))
	}
}

func TestRoundTripTextHeader(t *testing.T) {
	original := sampleContent()
	components, err := Encode(original)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(components)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if !reflect.DeepEqual(decoded.Header, original.Header) {
		t.Errorf("header: got %+v, want %+v", decoded.Header, original.Header)
	}
	if decoded.Body.Text != original.Body.Text {
		t.Errorf("body: got %q, want %q", decoded.Body.Text, original.Body.Text)
	}
	if decoded.Footer.Text != original.Footer.Text {
		t.Errorf("footer: got %q, want %q", decoded.Footer.Text, original.Footer.Text)
	}
	if len(decoded.Buttons) != len(original.Buttons) {
		t.Fatalf("got %d buttons, want %d", len(decoded.Buttons), len(original.Buttons))
	}
	for i, want := range original.Buttons {
		got := decoded.Buttons[i]
		if got.Type != want.Type || got.Text != want.Text || got.URL != want.URL || got.PhoneNumber != want.PhoneNumber {
			t.Errorf("button %d: got %+v, want %+v", i, got, want)
		}
	}
}

func TestRoundTripIsLossyForSamples(t *testing.T) {
	// sample fallbacks are materialized on encode and come back as examples
	original := models.TemplateContent{
		Body:    models.TemplateBody{Text: "No variables"},
		Buttons: []models.TemplateButton{{Type: models.ButtonURL, Text: "Open", URL: "https://example.com"}},
	}
	components, err := Encode(original)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(components)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(decoded.Body.Example, []string{"No variables"}) {
		t.Errorf("body example: got %v", decoded.Body.Example)
	}
	if !reflect.DeepEqual(decoded.Buttons[0].Example, []string{"https://example.com"}) {
		t.Errorf("button example: got %v", decoded.Buttons[0].Example)
	}
}

func TestRoundTripMediaHeaderKeepsKind(t *testing.T) {
	// only the header kind is guaranteed; the reference is an ephemeral
	// upload handle and is not part of the round-trip contract
	original := models.TemplateContent{
		Header: models.MediaHeader(models.HeaderVideo, "4::dmlkZW8="),
		Body:   models.TemplateBody{Text: "Watch this"},
	}
	components, err := Encode(original)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(components)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Header.Type != models.HeaderVideo {
		t.Errorf("got header type %q, want VIDEO", decoded.Header.Type)
	}
	if decoded.Header.Text != "" {
		t.Errorf("media header decoded with text %q", decoded.Header.Text)
	}
}

func TestSampleRowsAcceptsFlatAndNested(t *testing.T) {
	tests := []struct {
		in   string
		want SampleRows
	}{
		{`[["a","b"]]`, SampleRows{{"a", "b"}}},
		{`["a","b"]`, SampleRows{{"a", "b"}}},
	}
	for _, tt := range tests {
		var got SampleRows
		if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
			t.Fatalf("Unmarshal(%s): %v", tt.in, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Unmarshal(%s): got %v, want %v", tt.in, got, tt.want)
		}
	}
}
