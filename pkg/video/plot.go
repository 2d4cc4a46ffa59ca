package video

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"github.com/chenBenjamin97/tennis-analyzer/pkg/court"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/geometry"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/stats"
	"gocv.io/x/gocv"
)

func pt(p geometry.Point) image.Point {
	return image.Pt(int(p.X), int(p.Y))
}

func rect(b geometry.BoundingBox) image.Rectangle {
	return image.Rect(int(b[0]), int(b[1]), int(b[2]), int(b[3]))
}

//blendRect draws a filled rectangle over frame with overlayAlpha transparency
func blendRect(frame *gocv.Mat, r image.Rectangle, c color.RGBA) {
	shapes := frame.Clone()
	defer shapes.Close()

	gocv.Rectangle(&shapes, r, c, -1) //thickness -1 == filled rectangle
	gocv.AddWeighted(shapes, overlayAlpha, *frame, 1-overlayAlpha, 0, frame)
}

//plotPlayer plots given player's bounding box and writes its number above it
func plotPlayer(frame *gocv.Mat, box geometry.BoundingBox, player stats.Player) {
	if !box.Valid() {
		return
	}

	plotColor := player1Color
	if player == stats.Player2 {
		plotColor = player2Color
	}

	boundingBoxRect := rect(box)
	gocv.Rectangle(frame, boundingBoxRect, plotColor, 2)

	startPoint := image.Pt(boundingBoxRect.Min.X, boundingBoxRect.Min.Y-10)
	gocv.PutText(frame, fmt.Sprintf("Player %d", player.Number()), startPoint, gocv.FontHersheySimplex, 0.9, plotColor, 2)
}

//plotBall plots the ball's bounding box
func plotBall(frame *gocv.Mat, box geometry.BoundingBox) {
	if !box.Valid() {
		return
	}

	boundingBoxRect := rect(box)
	gocv.Rectangle(frame, boundingBoxRect, ballColor, 2)
	gocv.PutText(frame, "Ball", image.Pt(boundingBoxRect.Min.X, boundingBoxRect.Min.Y-10), gocv.FontHersheySimplex, 0.9, ballColor, 2)
}

//plotCourtKeypoints marks every detected court landmark with a dot and its index
func plotCourtKeypoints(frame *gocv.Mat, keypoints geometry.Keypoints) {
	for i := 0; i < keypoints.Len(); i++ {
		p := pt(keypoints.At(i))
		gocv.Circle(frame, p, 5, keypointColor, -1)
		gocv.PutText(frame, strconv.Itoa(i), image.Pt(p.X, p.Y-10), gocv.FontHersheySimplex, 0.5, keypointColor, 2)
	}
}

//plotMiniCourt plots the mini court background, its keypoints, lines and net
func plotMiniCourt(frame *gocv.Mat, mc *court.MiniCourt) {
	canvas := mc.Canvas()
	blendRect(frame, image.Rect(int(canvas.StartX), int(canvas.StartY), int(canvas.EndX), int(canvas.EndY)), canvasColor)

	for _, line := range mc.Lines() {
		gocv.Line(frame, pt(mc.Keypoint(line.From)), pt(mc.Keypoint(line.To)), courtLineColor, 2)
	}

	netStart, netEnd := mc.NetLine()
	gocv.Line(frame, pt(netStart), pt(netEnd), netColor, 2)

	keypoints := mc.Keypoints()
	for i := 0; i < keypoints.Len(); i++ {
		gocv.Circle(frame, pt(keypoints.At(i)), 5, keypointColor, -1)
	}
}

//plotMiniCourtPositions plots both players and the ball at their mini court positions of one frame
func plotMiniCourtPositions(frame *gocv.Mat, players [2]geometry.Point, ball geometry.Point) {
	gocv.Circle(frame, pt(players[stats.Player1]), 5, player1Color, -1)
	gocv.Circle(frame, pt(players[stats.Player2]), 5, player2Color, -1)
	gocv.Circle(frame, pt(ball), 5, ballColor, -1)
}

//plotStatsBoard plots the players stats table at the bottom right corner of the frame
func plotStatsBoard(frame *gocv.Mat, row stats.Row, unit string) {
	const boardWidth, boardHeight, lineHeight = 350, 230, 40
	const labelX, player1X, player2X = 10, 140, 250

	width, height := frame.Cols(), frame.Rows()
	startX, startY := width-boardWidth-40, height-boardHeight-40
	if startX < 0 || startY < 0 { //frame too small for the board
		return
	}

	blendRect(frame, image.Rect(startX, startY, startX+boardWidth, startY+boardHeight), boardColor)

	header := startY + 30
	gocv.PutText(frame, "Player 1", image.Pt(startX+player1X, header), gocv.FontHersheySimplex, 0.6, whiteRGB, 2)
	gocv.PutText(frame, "Player 2", image.Pt(startX+player2X, header), gocv.FontHersheySimplex, 0.6, whiteRGB, 2)

	for i, line := range stats.Board(row, unit) {
		y := header + (i+1)*lineHeight
		gocv.PutText(frame, line.Label, image.Pt(startX+labelX, y), gocv.FontHersheySimplex, 0.45, whiteRGB, 1)
		gocv.PutText(frame, line.Values[stats.Player1], image.Pt(startX+player1X, y), gocv.FontHersheySimplex, 0.5, whiteRGB, 1)
		gocv.PutText(frame, line.Values[stats.Player2], image.Pt(startX+player2X, y), gocv.FontHersheySimplex, 0.5, whiteRGB, 1)
	}
}

//plotFrameNumber writes the frame number at the top left corner
func plotFrameNumber(frame *gocv.Mat, frameNumber int) {
	gocv.PutText(frame, fmt.Sprintf("Frame: %d", frameNumber), image.Pt(10, 30), gocv.FontHersheySimplex, 1, whiteRGB, 2)
}
