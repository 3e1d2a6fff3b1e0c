package window

import (
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"pkt.systems/pslog"

	"github.com/javanhut/Zoha/config"
	"github.com/javanhut/Zoha/render"
	"github.com/javanhut/Zoha/tab"
)

// Notebook adapts gtk.Notebook to tab.Notebook
type Notebook struct {
	nb        *gtk.Notebook
	tabExpand bool
	log       pslog.Logger
}

// NewNotebook creates the tab notebook
func NewNotebook(d config.DisplayConfig, log pslog.Logger) *Notebook {
	nb := gtk.NewNotebook()
	nb.SetScrollable(true)
	nb.SetShowBorder(false)
	nb.SetTabPos(tabPosition(d.TabPosition))
	nb.AddCSSClass(render.NotebookClass)
	nb.AddCSSClass(render.TransparentClass)
	nb.SetHExpand(true)
	nb.SetVExpand(true)
	return &Notebook{nb: nb, tabExpand: d.TabExpand, log: log}
}

func tabPosition(p config.TabPosition) gtk.PositionType {
	switch p {
	case config.TabPositionBottom:
		return gtk.PosBottom
	case config.TabPositionLeft:
		return gtk.PosLeft
	case config.TabPositionRight:
		return gtk.PosRight
	default:
		return gtk.PosTop
	}
}

// Widget returns the gtk notebook
func (n *Notebook) Widget() *gtk.Notebook {
	return n.nb
}

// ConnectReordered reports pages moved by the user, by session id
func (n *Notebook) ConnectReordered(fn func(id tab.SessionID, pos int)) {
	n.nb.ConnectPageReordered(func(child gtk.Widgetter, pageNum uint) {
		id, ok := tab.ParseWidgetName(gtk.BaseWidget(child).Name())
		if !ok {
			n.log.Warn("reordered page without session", "page", pageNum)
			return
		}
		fn(id, int(pageNum))
	})
}

// NPages implements tab.Notebook
func (n *Notebook) NPages() int {
	return n.nb.NPages()
}

// CurrentPage implements tab.Notebook
func (n *Notebook) CurrentPage() int {
	return n.nb.CurrentPage()
}

// SetCurrentPage implements tab.Notebook
func (n *Notebook) SetCurrentPage(pos int) {
	n.nb.SetCurrentPage(pos)
}

// InsertPage implements tab.Notebook. Only terminals from Provider can be
// inserted; anything else yields -1.
func (n *Notebook) InsertPage(t tab.Terminal, pos int) int {
	term, ok := t.(*Terminal)
	if !ok {
		n.log.Error("notebook insert of foreign terminal", "session", t.ID())
		return -1
	}
	pos = n.nb.InsertPage(term.box, gtk.NewLabel(""), pos)
	n.nb.SetTabReorderable(term.box, true)
	if n.tabExpand {
		n.nb.Page(term.box).SetObjectProperty("tab-expand", true)
	}
	return pos
}

// RemovePage implements tab.Notebook
func (n *Notebook) RemovePage(pos int) {
	n.nb.RemovePage(pos)
}

// ReorderPage implements tab.Notebook
func (n *Notebook) ReorderPage(from, to int) {
	child := n.nb.NthPage(from)
	if child == nil {
		return
	}
	n.nb.ReorderChild(child, to)
}

// SetTabLabel implements tab.Notebook
func (n *Notebook) SetTabLabel(pos int, text string) {
	child := n.nb.NthPage(pos)
	if child == nil {
		return
	}
	n.nb.SetTabLabelText(child, text)
}

// SetShowTabs implements tab.Notebook
func (n *Notebook) SetShowTabs(show bool) {
	n.nb.SetShowTabs(show)
}
