//go:build !unix

package poster

func cellSize() (w, h int) {
	return defaultCellWidth, defaultCellHeight
}
