package richresponse

// QuickReplies is a set of suggested replies shown as buttons.
type QuickReplies struct {
	title        *string
	quickReplies []string
	hasReplies   bool
}

func NewQuickReplies(title string, replies ...string) *QuickReplies {
	return (&QuickReplies{}).SetTitle(title).SetQuickReplies(replies...)
}

func (q *QuickReplies) SetTitle(title string) *QuickReplies {
	q.title = stringPtr(title)
	return q
}

func (q *QuickReplies) SetQuickReplies(replies ...string) *QuickReplies {
	q.quickReplies = append([]string{}, replies...)
	q.hasReplies = true
	return q
}

func (q *QuickReplies) Title() (string, bool) {
	return deref(q.title)
}

func (q *QuickReplies) QuickReplies() ([]string, bool) {
	if !q.hasReplies {
		return nil, false
	}
	return append([]string{}, q.quickReplies...), true
}

func (q *QuickReplies) Kind() string { return KindQuickReplies }

func (q *QuickReplies) Encode() map[string]any {
	body := map[string]any{}
	putString(body, "title", q.title)
	if replies, ok := q.QuickReplies(); ok {
		body["quickReplies"] = replies
	}
	return map[string]any{KindQuickReplies: body}
}

func DecodeQuickReplies(msg map[string]any) (*QuickReplies, error) {
	body, err := object(msg, KindQuickReplies, KindQuickReplies)
	if err != nil {
		return nil, err
	}
	q := &QuickReplies{}
	title, err := optString(body, "title", "quickReplies.title")
	if err != nil {
		return nil, err
	}
	q.title = title
	replies, ok, err := optStrings(body, "quickReplies", "quickReplies.quickReplies")
	if err != nil {
		return nil, err
	}
	if ok {
		q.SetQuickReplies(replies...)
	}
	return q, nil
}
