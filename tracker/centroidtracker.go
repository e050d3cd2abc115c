package tracker

import (
	"sort"

	"github.com/cpmech/gosl/graph"
	"gonum.org/v1/gonum/mat"
)

// CentroidTracker assigns persistent IDs to per frame detection
// centroids by nearest neighbor matching against the previous frame's
// tracked positions.  Each instance owns its own tracked set so
// multiple independent tracking sessions can run in one process.
//
// Update must be called exactly once per frame.  The tracker is not
// safe for concurrent use, a host processing frames in parallel must
// serialize Update calls per instance
type CentroidTracker struct {
	cfg Config
	// objects maps each live id to its tracked object
	objects map[int]*TrackedObject
	// nextID is the id assigned to the next registered object
	nextID int
}

// NewCentroidTracker returns a tracker instance with an empty tracked
// set.  Returns an error when the configuration is invalid
func NewCentroidTracker(cfg Config) (*CentroidTracker, error) {

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &CentroidTracker{
		cfg:     cfg,
		objects: make(map[int]*TrackedObject),
	}, nil
}

// Objects returns the current live set keyed by object id
func (ct *CentroidTracker) Objects() map[int]*TrackedObject {
	return ct.objects
}

// Reset drops all tracked objects and id state, starting an independent
// tracking session
func (ct *CentroidTracker) Reset() {
	ct.objects = make(map[int]*TrackedObject)
	ct.nextID = 0
}

// register creates a brand new tracked object for an unmatched centroid
func (ct *CentroidTracker) register(centroid Point) *TrackedObject {
	obj := newTrackedObject(ct.nextID, centroid)
	ct.objects[ct.nextID] = obj
	ct.nextID++
	return obj
}

// deregister removes the object from the live set.  The id is never
// reused
func (ct *CentroidTracker) deregister(id int) {
	delete(ct.objects, id)
}

// ids returns the live object ids in ascending order.  Iteration over
// the tracked set always happens in id order so results are
// reproducible
func (ct *CentroidTracker) ids() []int {

	ids := make([]int, 0, len(ct.objects))

	for id := range ct.objects {
		ids = append(ids, id)
	}

	sort.Ints(ids)
	return ids
}

// age increments the object's disappeared counter and removes it from
// the live set once the counter exceeds MaxDisappeared
func (ct *CentroidTracker) age(id int) {

	obj := ct.objects[id]
	obj.Disappeared++

	if obj.Disappeared > ct.cfg.MaxDisappeared {
		ct.deregister(id)
	}
}

// Update matches the frame's detection centroids against the tracked
// set and returns the updated live set.  Matched objects are refreshed,
// unmatched objects age toward removal and unmatched centroids register
// as new objects.  An empty input is a valid "nothing seen" frame, not
// an error
func (ct *CentroidTracker) Update(centroids []Point) map[int]*TrackedObject {
	return ct.update(centroids, nil, nil)
}

// UpdateRects is an Update variant taking the detection bounding boxes
// so matched objects also carry their latest box and class label for
// downstream consumers.  Centroids are derived from the box centers.
// Labels may be nil
func (ct *CentroidTracker) UpdateRects(rects []Rect, labels []int) map[int]*TrackedObject {

	centroids := make([]Point, len(rects))
	for i, r := range rects {
		centroids[i] = r.Centroid()
	}

	return ct.update(centroids, rects, labels)
}

// update implements the per frame matching pass.  rects and labels are
// optional and indexed in step with centroids
func (ct *CentroidTracker) update(centroids []Point, rects []Rect,
	labels []int) map[int]*TrackedObject {

	// nothing seen this frame, age every tracked object
	if len(centroids) == 0 {
		for _, id := range ct.ids() {
			ct.age(id)
		}
		return ct.objects
	}

	// nothing tracked yet, register every input centroid
	if len(ct.objects) == 0 {
		for i, c := range centroids {
			obj := ct.register(c)
			ct.applyDetail(obj, i, rects, labels)
		}
		return ct.objects
	}

	ids := ct.ids()
	dist := ct.distanceMatrix(ids, centroids)

	var matches map[int]int

	if ct.cfg.Assignment == Optimal {
		matches = ct.assignOptimal(dist)
	} else {
		matches = ct.assignGreedy(dist)
	}

	usedCols := make(map[int]bool, len(matches))

	for row, id := range ids {

		col, ok := matches[row]

		if !ok {
			ct.age(id)
			continue
		}

		obj := ct.objects[id]
		obj.update(centroids[col])
		ct.applyDetail(obj, col, rects, labels)
		usedCols[col] = true
	}

	// leftover centroids matched nothing, register them as new objects
	for col, c := range centroids {
		if !usedCols[col] {
			obj := ct.register(c)
			ct.applyDetail(obj, col, rects, labels)
		}
	}

	return ct.objects
}

// applyDetail copies the matched detection's box and label onto the
// object when supplied
func (ct *CentroidTracker) applyDetail(obj *TrackedObject, col int,
	rects []Rect, labels []int) {

	if rects != nil {
		obj.Rect = rects[col]
	}

	if labels != nil && col < len(labels) {
		obj.Label = labels[col]
	}
}

// distanceMatrix builds the full Euclidean distance matrix between
// tracked objects and input centroids.  Rows are existing objects in
// ascending id order, columns the new centroids in input order
func (ct *CentroidTracker) distanceMatrix(ids []int, centroids []Point) *mat.Dense {

	d := mat.NewDense(len(ids), len(centroids), nil)

	for i, id := range ids {
		for j, c := range centroids {
			d.Set(i, j, ct.objects[id].Centroid.Distance(c))
		}
	}

	return d
}

// assignGreedy performs the greedy row/column assignment.  Rows are
// processed in ascending order of their minimum distance, ties broken
// by ascending id, and each row claims the nearest centroid column not
// already consumed.  A row whose nearest remaining column is beyond the
// distance threshold stays unmatched and leaves the column free.  A
// distance equal to the threshold still matches
func (ct *CentroidTracker) assignGreedy(dist *mat.Dense) map[int]int {

	rows, cols := dist.Dims()

	rowMin := make([]float64, rows)
	for i := 0; i < rows; i++ {
		rowMin[i] = mat.Min(dist.RowView(i))
	}

	order := make([]int, rows)
	for i := range order {
		order[i] = i
	}

	// stable sort keeps equal minimum rows in ascending id order
	sort.SliceStable(order, func(a, b int) bool {
		return rowMin[order[a]] < rowMin[order[b]]
	})

	matches := make(map[int]int, rows)
	usedCols := make(map[int]bool, cols)

	for _, row := range order {

		best := -1
		bestDist := 0.0

		for col := 0; col < cols; col++ {

			if usedCols[col] {
				continue
			}

			if d := dist.At(row, col); best == -1 || d < bestDist {
				best = col
				bestDist = d
			}
		}

		if best == -1 || bestDist > ct.cfg.DistanceThreshold {
			continue
		}

		matches[row] = best
		usedCols[best] = true
	}

	return matches
}

// assignOptimal solves the assignment problem over the full distance
// matrix with the Munkres algorithm, then rejects any pairing beyond
// the distance threshold
func (ct *CentroidTracker) assignOptimal(dist *mat.Dense) map[int]int {

	rows, cols := dist.Dims()

	cost := make([][]float64, rows)
	for i := range cost {
		cost[i] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			cost[i][j] = dist.At(i, j)
		}
	}

	mk := graph.Munkres{}
	mk.Init(rows, cols)
	mk.SetCostMatrix(cost)
	mk.Run()

	matches := make(map[int]int, rows)

	for row, col := range mk.Links {
		if col < 0 || dist.At(row, col) > ct.cfg.DistanceThreshold {
			continue
		}
		matches[row] = col
	}

	return matches
}
