package entities

// Tag is a #hashtag referenced by a status.
type Tag struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

func (t Tag) String() string { return "#" + t.Name }

func (t *Tag) UnmarshalJSON(data []byte) error {
	if err := requireFields("Tag", data, "name", "url"); err != nil {
		return err
	}
	type plain Tag
	if err := codec.Unmarshal(data, (*plain)(t)); err != nil {
		return &DecodeError{Target: "Tag", Err: err}
	}
	return nil
}

// Mention is an account referenced by a status.
type Mention struct {
	ID       UserID `json:"id"`
	URL      string `json:"url"`
	Username string `json:"username"`
	Acct     string `json:"acct"`
}

func (m *Mention) UnmarshalJSON(data []byte) error {
	if err := requireFields("Mention", data, "id", "username", "acct", "url"); err != nil {
		return err
	}
	type plain Mention
	if err := codec.Unmarshal(data, (*plain)(m)); err != nil {
		return &DecodeError{Target: "Mention", Err: err}
	}
	return nil
}

// Application is the client a status was posted from.
type Application struct {
	Name    string  `json:"name"`
	Website *string `json:"website"`
}

func (a *Application) UnmarshalJSON(data []byte) error {
	if err := requireFields("Application", data, "name"); err != nil {
		return err
	}
	type plain Application
	if err := codec.Unmarshal(data, (*plain)(a)); err != nil {
		return &DecodeError{Target: "Application", Err: err}
	}
	return nil
}

// Instance describes the remote server.
type Instance struct {
	URI         string `json:"uri"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Email       string `json:"email"`
}

func (i *Instance) UnmarshalJSON(data []byte) error {
	if err := requireFields("Instance", data, "uri", "title"); err != nil {
		return err
	}
	type plain Instance
	if err := codec.Unmarshal(data, (*plain)(i)); err != nil {
		return &DecodeError{Target: "Instance", Err: err}
	}
	return nil
}

// Context is the thread around a status.
type Context struct {
	Ancestors   []Status `json:"ancestors"`
	Descendants []Status `json:"descendants"`
}

func (c *Context) UnmarshalJSON(data []byte) error {
	if err := requireFields("Context", data, "ancestors", "descendants"); err != nil {
		return err
	}
	type plain Context
	if err := codec.Unmarshal(data, (*plain)(c)); err != nil {
		return &DecodeError{Target: "Context", Err: err}
	}
	return nil
}

// Card is the link preview attached to a status. Instances return an empty
// object when a status has none, so every field is optional.
type Card struct {
	URL          string `json:"url"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Type         string `json:"type"`
	Image        string `json:"image"`
	AuthorName   string `json:"author_name"`
	ProviderName string `json:"provider_name"`
}
