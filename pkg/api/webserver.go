package api

import (
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"strconv"

	"github.com/chenBenjamin97/tennis-analyzer/pkg/analysis"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/court"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/detection"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/report"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/shots"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/store"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

//Tagger tags an uploaded video, given its file name in the source directory
type Tagger func(srcVideoName string)

//SetRouter returns the API router. Uploaded videos are passed to tag in a new goroutine, analyses are kept in st.
func SetRouter(st *store.Store, tag Tagger) *gin.Engine {
	r := gin.Default()

	//serve html pages to client
	if static := viper.GetString("frontend.static-files-path"); static != "" {
		r.Static("/client", static)
		r.StaticFile("/", path.Join(static, "index.html"))
	}

	apiRoutes := r.Group("/api")

	apiRoutes.GET("/ReadyVideosNames", func(ctx *gin.Context) {
		if names, err := utils.ListDir(viper.GetString("directory.ready")); err != nil {
			ctx.Status(http.StatusInternalServerError)
		} else {
			ctx.JSON(http.StatusOK, names)
		}
	})

	apiRoutes.GET("/UserUploadsVideosNames", func(ctx *gin.Context) {
		if names, err := utils.ListDir(viper.GetString("directory.source")); err != nil {
			ctx.Status(http.StatusInternalServerError)
		} else {
			ctx.JSON(http.StatusOK, names)
		}
	})

	apiRoutes.GET("/Play", func(ctx *gin.Context) {
		videoName := ctx.Query("name")
		if videoName == "" {
			ctx.Status(http.StatusNotAcceptable) //missing url parameter
			return
		}

		analyzed := ctx.Query("analyzed")
		if analyzed != "true" && analyzed != "false" {
			ctx.Status(http.StatusNotAcceptable) //missing url parameter
			return
		}

		dir := viper.GetString("directory.source")
		if analyzed == "true" {
			dir = viper.GetString("directory.ready")
		}
		videoPath := path.Join(dir, path.Base(videoName)+"."+viper.GetString("video.prod_format"))

		if _, err := os.Stat(videoPath); err != nil {
			if os.IsNotExist(err) {
				ctx.Status(http.StatusNotFound)
			} else {
				ctx.Status(http.StatusInternalServerError)
			}
			return
		}

		ctx.Header("Content-Type", "video/mp4")
		http.ServeFile(ctx.Writer, ctx.Request, videoPath)
	})

	apiRoutes.POST("/Upload", func(ctx *gin.Context) {
		file, fHeader, err := ctx.Request.FormFile("video")
		if err != nil {
			ctx.Status(http.StatusBadRequest)
			return
		}
		defer file.Close()

		fileName := path.Base(fHeader.Filename)
		if existNames, err := utils.ListDir(viper.GetString("directory.source")); err != nil {
			ctx.Status(http.StatusInternalServerError)
			return
		} else if utils.InSlice(fileName, existNames) {
			ctx.Status(http.StatusNotAcceptable)
			return
		}

		log.Printf("api/Upload: Recived new file: name - '%s', size - %v Bytes", fileName, fHeader.Size)

		fileBytes, err := io.ReadAll(file)
		if err != nil {
			log.Printf("api/Upload: Could not read request's body, got '%v'", err)
			ctx.Status(http.StatusInternalServerError)
			return
		}

		srcFilePath := path.Join(viper.GetString("directory.source"), fileName)
		if err = os.WriteFile(srcFilePath, fileBytes, 0444); err != nil {
			log.Printf("api/Upload: Could not write '%s' file, got '%v'", srcFilePath, err)
			ctx.Status(http.StatusInternalServerError)
			return
		}

		if tag != nil {
			go tag(fileName)
		}
		ctx.Status(http.StatusAccepted)
	})

	//analyzes detections posted as JSON, and stores the result under the 'video' url parameter if given
	apiRoutes.POST("/Analyze", func(ctx *gin.Context) {
		match := &detection.Match{}
		if err := ctx.ShouldBindJSON(match); err != nil {
			ctx.String(http.StatusBadRequest, err.Error())
			return
		}

		cfg, err := analysis.ConfigFromViper()
		if err != nil {
			log.Printf("api/Analyze: Bad configuration, got '%v'", err)
			ctx.Status(http.StatusInternalServerError)
			return
		}

		res, err := analysis.Analyze(match, cfg)
		if err != nil {
			ctx.String(http.StatusUnprocessableEntity, err.Error())
			return
		}

		if videoName := ctx.Query("video"); videoName != "" && st != nil {
			if err := st.SaveRun(videoName, res); err != nil {
				log.Printf("api/Analyze: Could not store run %s, got '%v'", res.RunID, err)
				ctx.Status(http.StatusInternalServerError)
				return
			}
		}

		ctx.JSON(http.StatusOK, res)
	})

	//returns the ball trajectory chart (PNG) of posted detections
	apiRoutes.POST("/Trajectory", func(ctx *gin.Context) {
		match := &detection.Match{}
		if err := ctx.ShouldBindJSON(match); err != nil {
			ctx.String(http.StatusBadRequest, err.Error())
			return
		}

		cfg, err := analysis.ConfigFromViper()
		if err != nil {
			ctx.Status(http.StatusInternalServerError)
			return
		}
		if match.FPS > 0 {
			cfg.Shots.FPS = match.FPS
		}

		events, err := shots.Segment(match.Ball, cfg.Shots)
		if err != nil {
			ctx.String(http.StatusUnprocessableEntity, err.Error())
			return
		}

		ctx.Header("Content-Type", "image/png")
		ctx.Status(http.StatusOK)
		if err := report.WriteTrajectory(ctx.Writer, ctx.Query("title"), match.Ball, events, cfg.Shots.SmoothingWindow); err != nil {
			log.Printf("api/Trajectory: Error, got '%v'", err)
		}
	})

	apiRoutes.GET("/MiniCourt", func(ctx *gin.Context) {
		width, errW := strconv.Atoi(ctx.Query("width"))
		height, errH := strconv.Atoi(ctx.Query("height"))
		if errW != nil || errH != nil {
			ctx.Status(http.StatusNotAcceptable) //missing url parameter
			return
		}

		cfg, err := analysis.ConfigFromViper()
		if err != nil {
			ctx.Status(http.StatusInternalServerError)
			return
		}

		mc, err := court.NewMiniCourt(width, height, cfg.MiniCourt)
		if err != nil {
			ctx.String(http.StatusUnprocessableEntity, err.Error())
			return
		}

		ctx.JSON(http.StatusOK, mc)
	})

	if st != nil {
		setStoreRoutes(apiRoutes, st)
	}

	return r
}

func storeStatus(err error) int {
	if errors.Is(err, store.ErrRunNotFound) {
		return http.StatusNotFound
	}

	return http.StatusInternalServerError
}

//setStoreRoutes serves stored analysis runs
func setStoreRoutes(apiRoutes *gin.RouterGroup, st *store.Store) {
	apiRoutes.GET("/Runs", func(ctx *gin.Context) {
		runs, err := st.ListRuns()
		if err != nil {
			log.Printf("api/Runs: Error, got '%v'", err)
			ctx.Status(http.StatusInternalServerError)
			return
		}

		ctx.JSON(http.StatusOK, runs)
	})

	apiRoutes.DELETE("/Runs", func(ctx *gin.Context) {
		id := ctx.Query("id")
		if id == "" {
			ctx.Status(http.StatusNotAcceptable) //missing url parameter
			return
		}

		if err := st.DeleteRun(id); err != nil {
			ctx.Status(storeStatus(err))
			return
		}

		ctx.Status(http.StatusNoContent)
	})

	apiRoutes.GET("/Stats", func(ctx *gin.Context) {
		id := ctx.Query("id")
		if id == "" {
			ctx.Status(http.StatusNotAcceptable) //missing url parameter
			return
		}

		rows, err := st.LoadStats(id)
		if err != nil {
			ctx.Status(storeStatus(err))
			return
		}

		ctx.JSON(http.StatusOK, rows)
	})

	apiRoutes.GET("/Shots", func(ctx *gin.Context) {
		id := ctx.Query("id")
		if id == "" {
			ctx.Status(http.StatusNotAcceptable) //missing url parameter
			return
		}

		frames, played, err := st.LoadShots(id)
		if err != nil {
			ctx.Status(storeStatus(err))
			return
		}

		ctx.JSON(http.StatusOK, gin.H{"shot_frames": frames, "shots": played})
	})
}
