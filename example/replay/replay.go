/*
Example code showing how to run detection logs through the tracker as a
line oriented filter.  Each stdin line is one frame of detections in
JSON, eg:

	{"items": [{"bbox": [2007, 608, 1315, 1532]}, {"bbox": [348, 348, 1842, 1797]}]}

bbox values are x, y, width, height.  Each detection in the output is
annotated with its assigned track id and the frame's count is appended
under the "count" key.
*/
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	centroidtrack "github.com/swdee/go-centroidtrack"
	"github.com/swdee/go-centroidtrack/tracker"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

func main() {
	// disable logging timestamps
	log.SetFlags(0)

	maxDis := flag.Int("maxdis", 50, "Frames of consecutive non-match tolerated before a track is dropped")
	distTr := flag.Float64("disttr", 530, "Maximum centroid distance accepted as a valid match")
	minApp := flag.Int("minapp", 1, "Matched frames before an object becomes countable")
	biDir := flag.Bool("bidir", false, "Count up and down directions separately")
	biDirTr := flag.Float64("bidirtr", 0, "Minimum displacement magnitude to count in bidirectional mode")
	optimal := flag.Bool("optimal", false, "Use Munkres assignment instead of greedy matching")
	flag.Parse()

	cfg := tracker.Config{
		MaxDisappeared:         *maxDis,
		DistanceThreshold:      *distTr,
		MinAppearance:          *minApp,
		BidirectionalMode:      *biDir,
		BidirectionalThreshold: *biDirTr,
	}

	if *optimal {
		cfg.Assignment = tracker.Optimal
	}

	proc, err := centroidtrack.NewProcessor(cfg)

	if err != nil {
		log.Fatalf("Error creating processor: %v", err)
	}

	s := bufio.NewScanner(os.Stdin)
	bufsize := 10 << 20
	buf := make([]byte, bufsize)
	s.Buffer(buf, bufsize)

	// running totals accumulated across the stream
	totals := tracker.Count{}

	for s.Scan() {
		fmt.Println(processLine(proc, s.Text(), &totals))
	}

	if err := s.Err(); err != nil {
		log.Fatalf("Error reading stdin: %v", err)
	}
}

// processLine runs one frame of detections through the processor and
// returns the annotated frame JSON
func processLine(proc *centroidtrack.Processor, line string,
	totals *tracker.Count) string {

	items := gjson.Get(line, "items").Array()

	dets := make([]centroidtrack.Detection, 0, len(items))

	// indexes of items that produced a detection, so annotation can
	// skip malformed entries
	used := make([]int, 0, len(items))

	for i, item := range items {

		bbox := item.Get("bbox").Array()

		// wrong coordinate count, skip this detection and keep the
		// rest of the frame
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
		used = append(used, i)
	}

	res := proc.Process(dets)
	totals.Add(res.Count)
	totals.Mode = res.Count.Mode

	out := line

	// annotate each detection with the id of the object tracking it.
	// an object matched this frame carries the detection's exact
	// centroid
	for n, det := range dets {

		c := det.Rect.Centroid()

		for id, obj := range res.Objects {
			if obj.Disappeared == 0 && obj.Centroid == c {
				out, _ = sjson.Set(out, fmt.Sprintf("items.%d.id", used[n]), id)
				break
			}
		}
	}

	if res.Count.Mode == tracker.Bidirectional {
		out, _ = sjson.Set(out, "count.up", totals.Up)
		out, _ = sjson.Set(out, "count.down", totals.Down)
	} else {
		out, _ = sjson.Set(out, "count", totals.Total)
	}

	return out
}
