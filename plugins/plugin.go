package plugins

// ISourceItem is a raw report document loaded from storage.
type ISourceItem interface {
	GetContent() []byte
	GetID() string
	GetSource() string
}

// Item is the in-memory ISourceItem produced by the source reader.
type Item struct {
	Content []byte
	ID      string
	Source  string
}

func (i *Item) GetContent() []byte {
	return i.Content
}

func (i *Item) GetID() string {
	return i.ID
}

// GetSource returns the path the item was read from.
func (i *Item) GetSource() string {
	return i.Source
}
