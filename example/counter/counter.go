/*
Example code showing how to count people crossing a camera view.  Video
frames are buffered from a file and replayed as a simulated camera
stream over MJPEG HTTP, with detections for each frame read from a
detection log so the demo runs on any machine without an inference
stack.  The detection log is newline delimited JSON, one line per video
frame:

	{"items": [{"bbox": [x, y, w, h], "label": 0, "prob": 0.92}, ...]}
*/
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	centroidtrack "github.com/swdee/go-centroidtrack"
	"github.com/swdee/go-centroidtrack/render"
	"github.com/swdee/go-centroidtrack/tracker"
	"github.com/tidwall/gjson"
	"gocv.io/x/gocv"
)

var (
	// FPS is the number of FPS to simulate
	FPS         = int64(30)
	FPSinterval = time.Duration(float64(time.Second) / float64(FPS))
)

// ResultFrame is a struct to wrap the gocv byte buffer and error result
type ResultFrame struct {
	Buf *gocv.NativeByteBuffer
	Err error
}

// Demo defines the struct for running the object counting demo
type Demo struct {
	// vidBuffer buffers the video frames into memory
	vidBuffer []gocv.Mat
	// detections holds the per frame detection sets read from the
	// detection log, indexed in step with vidBuffer
	detections [][]centroidtrack.Detection
	// proc runs the tracking and counting pipeline
	proc *centroidtrack.Processor
	// trail records tracked centroid history for drawing
	trail *tracker.Trail
	// labels are the class names of the detection model that produced
	// the log
	labels []string
	// totals accumulates the per frame counts across the stream
	totals tracker.Count
}

// NewDemo returns an instance of Demo, a streaming HTTP server showing
// video with tracked and counted objects
func NewDemo(vidFile, detFile, labelFile string,
	cfg tracker.Config) (*Demo, error) {

	d := &Demo{
		trail: tracker.NewTrail(32),
	}

	err := d.bufferVideo(vidFile)

	if err != nil {
		return nil, fmt.Errorf("Error buffering video: %w", err)
	}

	err = d.loadDetections(detFile)

	if err != nil {
		return nil, fmt.Errorf("Error loading detections: %w", err)
	}

	d.proc, err = centroidtrack.NewProcessor(cfg)

	if err != nil {
		return nil, fmt.Errorf("Error creating processor: %w", err)
	}

	if labelFile != "" {
		// load in model class names
		d.labels, err = centroidtrack.LoadLabels(labelFile)

		if err != nil {
			return nil, fmt.Errorf("Error loading model labels: %w", err)
		}
	}

	return d, nil
}

// bufferVideo reads in the video frames and saves them to a buffer
func (d *Demo) bufferVideo(vidFile string) error {

	// open handle to read frames of video file
	video, err := gocv.VideoCaptureFile(vidFile)

	if err != nil {
		return err
	}

	defer video.Close()

	d.vidBuffer = make([]gocv.Mat, 0)

	for {
		img := gocv.NewMat()

		// read the next frame from the video
		if ok := video.Read(&img); !ok {
			// reached last video frame
			break
		}

		// Check if the frame is empty
		if img.Empty() {
			continue
		}

		// push frame onto buffer
		d.vidBuffer = append(d.vidBuffer, img)
	}

	return nil
}

// loadDetections reads the newline delimited detection log, one line
// per video frame
func (d *Demo) loadDetections(detFile string) error {

	data, err := os.ReadFile(detFile)

	if err != nil {
		return err
	}

	d.detections = make([][]centroidtrack.Detection, 0, len(d.vidBuffer))

	for _, line := range strings.Split(string(data), "\n") {

		if strings.TrimSpace(line) == "" {
			continue
		}

		items := gjson.Get(line, "items").Array()
		dets := make([]centroidtrack.Detection, 0, len(items))

		for _, item := range items {

			bbox := item.Get("bbox").Array()

			if len(bbox) != 4 {
				continue
			}

			x := bbox[0].Float()
			y := bbox[1].Float()
			w := bbox[2].Float()
			h := bbox[3].Float()

			dets = append(dets, centroidtrack.Detection{
				Rect:  tracker.NewRect(x, y, x+w, y+h),
				Label: int(item.Get("label").Int()),
				Score: float32(item.Get("prob").Float()),
			})
		}

		d.detections = append(d.detections, dets)
	}

	if len(d.detections) < len(d.vidBuffer) {
		log.Printf("Detection log has %d frames for %d video frames, "+
			"missing frames are treated as empty\n",
			len(d.detections), len(d.vidBuffer))
	}

	return nil
}

// frameDetections returns the detection set for the given frame number
func (d *Demo) frameDetections(frameNum int) []centroidtrack.Detection {

	if frameNum >= len(d.detections) {
		return nil
	}

	return d.detections[frameNum]
}

// Stream is the HTTP handler function used to stream video frames to browser
func (d *Demo) Stream(w http.ResponseWriter, r *http.Request) {

	log.Printf("New client connection established\n")

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")

	// restart the tracking session for the new playback loop
	d.proc.Reset()
	d.trail.Reset()
	d.totals = tracker.Count{}

	// pointer to position in video buffer
	frameNum := -1

	ticker := time.NewTicker(FPSinterval)
	defer ticker.Stop()

	// chan to receive processed frames
	recvFrame := make(chan ResultFrame, 30)

loop:
	for {
		select {
		case <-r.Context().Done():
			log.Printf("Client disconnected\n")
			break loop

		// simulate reading a 30FPS web camera
		case <-ticker.C:

			// increment pointer to next image in the video buffer
			frameNum++
			if frameNum > len(d.vidBuffer)-1 {
				frameNum = 0
				d.proc.Reset()
				d.trail.Reset()
				d.totals = tracker.Count{}
			}

			d.ProcessFrame(d.vidBuffer[frameNum], recvFrame, frameNum)

		case buf := <-recvFrame:

			if buf.Err != nil {
				log.Printf("Error occured during ProcessFrame: %v", buf.Err)

			} else {
				// Write the image to the response writer
				w.Write([]byte("--frame\r\n"))
				w.Write([]byte("Content-Type: image/jpeg\r\n\r\n"))
				w.Write(buf.Buf.GetBytes())
				w.Write([]byte("\r\n"))

				// Flush the buffer
				flusher, ok := w.(http.Flusher)
				if ok {
					flusher.Flush()
				}
			}

			buf.Buf.Close()
		}
	}
}

// ProcessFrame runs one buffered frame's detections through the
// tracking pipeline, annotates the image and returns the result encoded
// as a JPG file
func (d *Demo) ProcessFrame(img gocv.Mat, retChan chan<- ResultFrame,
	frameNum int) {

	res := d.proc.Process(d.frameDetections(frameNum))
	d.totals.Add(res.Count)
	d.totals.Mode = res.Count.Mode

	// collect active objects and extend their trails
	objects := make([]*tracker.TrackedObject, 0, len(res.Objects))

	for _, obj := range res.Objects {
		if obj.Disappeared > 0 {
			continue
		}
		objects = append(objects, obj)
		d.trail.Add(obj)
	}

	// copy the source image and annotate the copy
	resImg := gocv.NewMat()
	defer resImg.Close()
	img.CopyTo(&resImg)

	font := render.DefaultFont()

	render.TrackerBoxes(&resImg, objects, d.labels, font, 2)
	render.Trail(&resImg, objects, d.trail, render.DefaultTrailStyle())
	render.CountOverlay(&resImg, d.totals, font)

	// Encode the image to JPEG format
	buf, err := gocv.IMEncode(".jpg", resImg)

	retChan <- ResultFrame{
		Buf: buf,
		Err: err,
	}
}

func main() {
	// disable logging timestamps
	log.SetFlags(0)

	vidFile := flag.String("v", "video.mp4", "Video file to run tracking on")
	detFile := flag.String("d", "detections.jsonl", "Detection log file, one JSON line per frame")
	labelFile := flag.String("l", "", "Text file containing model class labels")
	addr := flag.String("a", "localhost:8080", "HTTP Address to run server on, format address:port")
	maxDis := flag.Int("maxdis", 50, "Frames of consecutive non-match tolerated before a track is dropped")
	distTr := flag.Float64("disttr", 530, "Maximum centroid distance accepted as a valid match")
	minApp := flag.Int("minapp", 2, "Matched frames before an object becomes countable")
	biDir := flag.Bool("bidir", false, "Count up and down directions separately")
	biDirTr := flag.Float64("bidirtr", 0, "Minimum displacement magnitude to count in bidirectional mode")
	flag.Parse()

	cfg := tracker.Config{
		MaxDisappeared:         *maxDis,
		DistanceThreshold:      *distTr,
		MinAppearance:          *minApp,
		BidirectionalMode:      *biDir,
		BidirectionalThreshold: *biDirTr,
	}

	demo, err := NewDemo(*vidFile, *detFile, *labelFile, cfg)

	if err != nil {
		log.Fatalf("Error creating demo: %v", err)
	}

	http.HandleFunc("/stream", demo.Stream)

	log.Printf("Open browser and view video stream at http://%s/stream\n", *addr)
	log.Fatal(http.ListenAndServe(*addr, nil))
}
