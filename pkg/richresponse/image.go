package richresponse

// Image is a picture response referenced by URL.
type Image struct {
	imageURL *string
}

func NewImage(imageURL string) *Image {
	return (&Image{}).SetImageURL(imageURL)
}

func (i *Image) SetImageURL(imageURL string) *Image {
	i.imageURL = stringPtr(imageURL)
	return i
}

func (i *Image) ImageURL() (string, bool) {
	return deref(i.imageURL)
}

func (i *Image) Kind() string { return KindImage }

func (i *Image) Encode() map[string]any {
	body := map[string]any{}
	putString(body, "imageUri", i.imageURL)
	return map[string]any{KindImage: body}
}

func DecodeImage(msg map[string]any) (*Image, error) {
	body, err := object(msg, KindImage, KindImage)
	if err != nil {
		return nil, err
	}
	url, err := optString(body, "imageUri", "image.imageUri")
	if err != nil {
		return nil, err
	}
	return &Image{imageURL: url}, nil
}
