/*
go-centroidtrack assigns persistent identities to objects detected
independently in each video frame, tracks their disappearance and
reappearance over time, and classifies aggregate motion into directional
or bidirectional counts.

It is intended to be called once per frame by a host pipeline that
supplies the frame's detection bounding boxes and reads back the updated
set of tracked identities plus the frame's count.  Matching is geometry
only, by nearest centroid distance, so the library pairs with any object
detector that produces bounding boxes.

See example code and usage in the example subdirectory.
*/
package centroidtrack
