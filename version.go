package florence

// Version is stamped by the build.
var Version = "0.1.0"
