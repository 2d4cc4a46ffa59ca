package utils

//SingleLineWidth is the width of a singles court in meters
const SingleLineWidth = 8.23

//DoubleLineWidth is the width of a doubles court in meters, the reference length for every pixel <-> meter conversion
const DoubleLineWidth = 10.97

//HalfCourtLineHeight is the distance between a baseline and the net in meters
const HalfCourtLineHeight = 11.88

//CourtLength is the distance between both baselines in meters
const CourtLength = HalfCourtLineHeight * 2

//ServiceLineWidth is the width of a service box in meters
const ServiceLineWidth = 6.4

//DoubleAllyDifference is the width of a doubles alley in meters
const DoubleAllyDifference = 1.37

//NoMansLandHeight is the distance between a baseline and its service line in meters
const NoMansLandHeight = 5.48

//CourtKeypointsNum is the number of court landmarks the keypoints model returns
const CourtKeypointsNum = 14

//BallTrackID is the track ID the ball tracker uses for the ball
const BallTrackID = 1

//DefaultFPS is the frame rate assumed when a video does not report one
const DefaultFPS = 24.0

//DefaultMinShotSeconds is the shortest plausible time between two shots
const DefaultMinShotSeconds = 1.0

//DefaultSmoothingWindow is the rolling mean window applied to the ball trajectory
const DefaultSmoothingWindow = 5

//MiniCourtWidth is the default mini court canvas width in pixels
const MiniCourtWidth = 250

//MiniCourtHeight is the default mini court canvas height in pixels
const MiniCourtHeight = 450

//MiniCourtBuffer is the default margin between the mini court canvas and the frame edge
const MiniCourtBuffer = 50

//MiniCourtPadding is the default inset of the court lines inside the canvas
const MiniCourtPadding = 20
