package video

import (
	"image/color"
	"path"

	"github.com/chenBenjamin97/tennis-analyzer/pkg/utils"
	"github.com/spf13/viper"
)

var player1Color = color.RGBA{255, 0, 0, 0}
var player2Color = color.RGBA{0, 0, 255, 0}
var ballColor = color.RGBA{255, 255, 0, 0}
var keypointColor = color.RGBA{255, 0, 0, 0}
var courtLineColor = color.RGBA{0, 0, 0, 0}
var netColor = color.RGBA{0, 0, 255, 0}
var canvasColor = color.RGBA{255, 255, 255, 0}
var boardColor = color.RGBA{0, 0, 0, 0}
var whiteRGB = color.RGBA{255, 255, 255, 0}

//transparency of the mini court canvas and the stats board over the video
const overlayAlpha = 0.5

//videoPaths are every file involved in tagging one source video
type videoPaths struct {
	source     string //uploaded video
	temp       string //tagged '.avi' before conversion
	ready      string //tagged video in production format
	detections string //detections cache
	trajectory string //ball trajectory debug chart
}

//newVideoPaths derives the paths of srcVideoName (with extension) from the directories of the configuration file
func newVideoPaths(srcVideoName string) videoPaths {
	name := utils.TrimExt(srcVideoName)
	return videoPaths{
		source:     path.Join(viper.GetString("directory.source"), srcVideoName),
		temp:       path.Join(viper.GetString("directory.temp"), name+".avi"),
		ready:      path.Join(viper.GetString("directory.ready"), name+"."+viper.GetString("video.prod_format")),
		detections: path.Join(viper.GetString("directory.temp"), name+".json"),
		trajectory: path.Join(viper.GetString("directory.debug"), name+"_trajectory.png"),
	}
}
