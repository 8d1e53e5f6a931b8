// Package render draws engine snapshots as interactive HTML scatter charts.
//
// Points are colored by their assigned cluster, centroids are drawn with a
// larger diamond symbol in the same color, and optionally every point is
// joined to its centroid by a line. Higher-dimensional data is projected onto
// two chosen dimensions.
//
//	eng.Events().Subscribe(centroids.EventEnd, func(s centroids.State) {
//	    f, _ := os.Create("clusters.html")
//	    defer f.Close()
//	    _ = render.Chart(f, s, render.Options{Lines: true})
//	})
package render
