// Package wave reads and writes uncompressed PCM RIFF/WAVE containers.
//
// The package provides three pieces:
//   - Info: an immutable description of a PCM stream (channels, sample
//     width, sample rate, frame count) with derived format math
//   - Reader: opens an existing container and extracts arbitrary
//     time-bounded slices of frames
//   - Writer: creates a new container from an Info template and appends
//     raw frames, finalizing the header on Close
//
// Only integer PCM (audio format tag 1) is supported. Compressed or
// floating-point containers are rejected at open/create time.
//
// Example usage:
//
//	r, err := wave.Open("recording.wav")
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	data, err := r.Slice(12.34, 58.91)
//	if err != nil {
//	    return err
//	}
//
//	w, err := wave.Create("chapter1.wav", r.Info())
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//	if err := w.Append(data); err != nil {
//	    return err
//	}
package wave
