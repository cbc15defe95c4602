package slate

// RedirectMode selects how a redirected index displays its target.
type RedirectMode int

const (
	// RedirectNormal shows and behaves as the target tile.
	RedirectNormal RedirectMode = iota
	// RedirectInvisible behaves as the target tile but displays nothing.
	RedirectInvisible
)

func (m RedirectMode) String() string {
	if m == RedirectInvisible {
		return "invisible"
	}
	return "normal"
}

// RedirectedTile forwards display and clicks to Parent.
type RedirectedTile struct {
	Parent Tile
	Mode   RedirectMode
}

func (t *RedirectedTile) BaseStack(s *Slate, v Viewer) Stack {
	return t.Parent.BaseStack(s, v)
}

func (t *RedirectedTile) DisplayedStack(s *Slate, v Viewer) Stack {
	if t.Mode == RedirectInvisible {
		return Stack{}
	}
	return t.Parent.DisplayedStack(s, v)
}

func (t *RedirectedTile) CollectClickCallbacks(ct ClickType) ClickCallback {
	return t.Parent.CollectClickCallbacks(ct)
}
