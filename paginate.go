package text2img

// MaxLines returns how many whole lines of lineHeight fit in canvasHeight.
func MaxLines(canvasHeight, lineHeight int) int {
	if lineHeight <= 0 || canvasHeight <= 0 {
		return 0
	}
	return canvasHeight / lineHeight
}

// PaginateLines splits lines into the prefix that fits one page and the
// remainder that carries over to the next page.
// When not even one line fits, drawn is empty and every line is returned
// as rest; callers must reject such a layout before paginating.
func PaginateLines(lines []Line, canvasHeight, lineHeight int) (drawn, rest []Line) {
	n := min(MaxLines(canvasHeight, lineHeight), len(lines))
	return lines[:n:n], lines[n:]
}
