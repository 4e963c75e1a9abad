// Package ebitenhost runs a viewport inside an ebiten window, drawing through
// the software rasterizer. It is only built with the ebiten tag.
package ebitenhost
