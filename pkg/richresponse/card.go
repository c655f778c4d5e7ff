package richresponse

import "fmt"

// Button is a card button. Unset fields are left out of the wire object.
type Button struct {
	text     *string
	postback *string
}

func NewButton(text, postback string) Button {
	return Button{}.WithText(text).WithPostback(postback)
}

func (b Button) WithText(text string) Button {
	b.text = stringPtr(text)
	return b
}

func (b Button) WithPostback(postback string) Button {
	b.postback = stringPtr(postback)
	return b
}

func (b Button) Text() (string, bool)     { return deref(b.text) }
func (b Button) Postback() (string, bool) { return deref(b.postback) }

func (b Button) encode() map[string]any {
	out := map[string]any{}
	putString(out, "text", b.text)
	putString(out, "postback", b.postback)
	return out
}

func decodeButton(m map[string]any, field string) (Button, error) {
	text, err := optString(m, "text", field+".text")
	if err != nil {
		return Button{}, err
	}
	postback, err := optString(m, "postback", field+".postback")
	if err != nil {
		return Button{}, err
	}
	return Button{text: text, postback: postback}, nil
}

// Card is a titled card with an optional image and buttons.
type Card struct {
	title      *string
	subtitle   *string
	imageURL   *string
	buttons    []Button
	hasButtons bool
}

func NewCard(title string) *Card {
	return (&Card{}).SetTitle(title)
}

func (c *Card) SetTitle(title string) *Card {
	c.title = stringPtr(title)
	return c
}

func (c *Card) SetSubtitle(subtitle string) *Card {
	c.subtitle = stringPtr(subtitle)
	return c
}

func (c *Card) SetImageURL(imageURL string) *Card {
	c.imageURL = stringPtr(imageURL)
	return c
}

func (c *Card) SetButtons(buttons ...Button) *Card {
	c.buttons = append([]Button{}, buttons...)
	c.hasButtons = true
	return c
}

func (c *Card) Title() (string, bool)    { return deref(c.title) }
func (c *Card) Subtitle() (string, bool) { return deref(c.subtitle) }
func (c *Card) ImageURL() (string, bool) { return deref(c.imageURL) }

func (c *Card) Buttons() ([]Button, bool) {
	if !c.hasButtons {
		return nil, false
	}
	return append([]Button{}, c.buttons...), true
}

func (c *Card) Kind() string { return KindCard }

func (c *Card) Encode() map[string]any {
	body := map[string]any{}
	putString(body, "title", c.title)
	putString(body, "subtitle", c.subtitle)
	putString(body, "imageUri", c.imageURL)
	if c.hasButtons {
		buttons := make([]map[string]any, 0, len(c.buttons))
		for _, b := range c.buttons {
			buttons = append(buttons, b.encode())
		}
		body["buttons"] = buttons
	}
	return map[string]any{KindCard: body}
}

func DecodeCard(msg map[string]any) (*Card, error) {
	body, err := object(msg, KindCard, KindCard)
	if err != nil {
		return nil, err
	}
	c := &Card{}
	if c.title, err = optString(body, "title", "card.title"); err != nil {
		return nil, err
	}
	if c.subtitle, err = optString(body, "subtitle", "card.subtitle"); err != nil {
		return nil, err
	}
	if c.imageURL, err = optString(body, "imageUri", "card.imageUri"); err != nil {
		return nil, err
	}
	raw, ok, err := optObjects(body, "buttons", "card.buttons")
	if err != nil {
		return nil, err
	}
	if ok {
		buttons := make([]Button, 0, len(raw))
		for i, m := range raw {
			b, err := decodeButton(m, fmt.Sprintf("card.buttons[%d]", i))
			if err != nil {
				return nil, err
			}
			buttons = append(buttons, b)
		}
		c.SetButtons(buttons...)
	}
	return c, nil
}
