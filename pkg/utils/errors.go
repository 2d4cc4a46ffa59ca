package utils

import "github.com/pkg/errors"

//ErrInvalidFrameSize is returned when the mini court canvas does not fit inside the source frame
var ErrInvalidFrameSize = errors.New("invalid frame size")

//ErrInvalidFrameInterval is returned for a zero or negative time between two shot events
var ErrInvalidFrameInterval = errors.New("invalid frame interval")

//ErrMissingReferenceData is returned when court keypoints (or positions) needed for a conversion are not available
var ErrMissingReferenceData = errors.New("missing reference data")

//ErrInsufficientBallData is returned when fewer than 2 ball positions are available for shot segmentation
var ErrInsufficientBallData = errors.New("insufficient ball data")
