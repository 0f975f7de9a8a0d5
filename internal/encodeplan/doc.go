// Package encodeplan synthesizes the libx265 HDR10 parameter string and
// the ordered ffmpeg argument sequence for the final transcode.
//
// ffmpeg flag position is meaning: flags before -i configure input
// handling, flags after it configure the output, and misplacing one
// silently changes behavior instead of erroring. The builder therefore
// assembles two ordered halves and concatenates them, so the ordering
// cannot be violated piecemeal.
package encodeplan
