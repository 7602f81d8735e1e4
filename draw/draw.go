// Package draw renders phylogenetic trees as SVG phylograms. Layout is
// the classic rectangular form: a leaf's vertical position is its index
// in leaf order, a node's horizontal position is its cumulative branch
// length from the root (unit depth when the tree carries no lengths),
// and an internal node sits at the mean height of its children.
package draw

import (
	"io"
	"strconv"

	svg "github.com/ajstarks/svgo"
	"github.com/jhbadger/newick"
)

// A Point holds the layout coordinates of one node, in tree units: X in
// cumulative branch length (or edge hops), Y in leaf rows.
type Point struct {
	X, Y float64
}

// Options controls SVG rendering.
type Options struct {
	// Canvas size in pixels. Zero values default to 640x480.
	Width, Height int

	// Label font size in pixels; defaults to 10.
	FontSize int
}

// Layout computes coordinates for every node of the tree. Leaves occupy
// rows 0..L-1 in preorder; internal nodes take the mean Y of their
// children. X is the patristic distance from the root, or the edge count
// when every branch length in the tree is zero.
func Layout(t *newick.Tree) map[*newick.Node]Point {
	unit := true
	for _, n := range t.Root.Descendants() {
		if n.Length != 0 {
			unit = false
			break
		}
	}

	points := make(map[*newick.Node]Point)
	row := 0
	var place func(n *newick.Node, x float64) float64
	place = func(n *newick.Node, x float64) float64 {
		if unit {
			x++
		} else {
			x += n.Length
		}
		if n.IsLeaf() {
			y := float64(row)
			row++
			points[n] = Point{X: x, Y: y}
			return y
		}
		sum := 0.0
		for _, c := range n.Children {
			sum += place(c, x)
		}
		y := sum / float64(len(n.Children))
		points[n] = Point{X: x, Y: y}
		return y
	}

	if unit {
		// The root contributes no edge; start it at -1 so it lands on 0.
		place(t.Root, -1)
	} else {
		place(t.Root, -t.Root.Length)
	}
	return points
}

// SVG writes a rectangular phylogram of the tree to w: one horizontal
// line per branch, one vertical connector per internal node, and a text
// label at each leaf.
func SVG(w io.Writer, t *newick.Tree, opts Options) {
	if opts.Width <= 0 {
		opts.Width = 640
	}
	if opts.Height <= 0 {
		opts.Height = 480
	}
	if opts.FontSize <= 0 {
		opts.FontSize = 10
	}

	points := Layout(t)
	maxX := 0.0
	rows := 1
	for n, p := range points {
		if p.X > maxX {
			maxX = p.X
		}
		if n.IsLeaf() {
			rows++
		}
	}
	if maxX == 0 {
		maxX = 1
	}

	const margin = 10
	labelRoom := opts.Width / 4
	xScale := float64(opts.Width-2*margin-labelRoom) / maxX
	yScale := float64(opts.Height-2*margin) / float64(rows)
	px := func(p Point) int { return margin + int(p.X*xScale) }
	py := func(p Point) int { return margin + int((p.Y+1)*yScale) }

	lineStyle := "stroke:black;stroke-width:1"
	textStyle := "font-family:sans-serif;font-size:" +
		strconv.Itoa(opts.FontSize) + "px"

	canvas := svg.New(w)
	canvas.Start(opts.Width, opts.Height)
	var render func(n *newick.Node)
	render = func(n *newick.Node) {
		p := points[n]
		if n.Parent != nil {
			pp := points[n.Parent]
			canvas.Line(px(pp), py(p), px(p), py(p), lineStyle)
			canvas.Line(px(pp), py(pp), px(pp), py(p), lineStyle)
		}
		if n.IsLeaf() {
			canvas.Text(px(p)+4, py(p)+opts.FontSize/3, n.Name, textStyle)
			return
		}
		for _, c := range n.Children {
			render(c)
		}
	}
	render(t.Root)
	canvas.End()
}
