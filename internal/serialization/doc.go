// Package serialization saves and loads trained networks.
//
// A model named by a base path is stored as two JSON artifacts:
//
//	model.json          network state: topology, learning rate, every layer
//	model_config.json   trainer configuration (nn.Config)
//
// The network artifact holds:
//
//	{
//	  "input_size": 2, "hidden_size": 10, "output_size": 1,
//	  "num_layers": 2, "learning_rate": 0.1,
//	  "weights": [{"rows": 10, "cols": 2, "data": [[...], ...]}, ...],
//	  "biases":  [{"rows": 10, "cols": 1, "data": [[...], ...]}, ...]
//	}
//
// Both files contain only numeric fields. Floats are written in Go's
// shortest round-trip form, so every weight reads back bit for bit.
//
// Loading prefers the configuration artifact when it exists. Without it,
// the configuration is rebuilt from the network artifact, and any topology
// field missing there is inferred from the weight matrices.
//
// Example usage:
//
//	if err := serialization.Save("models/xor.json", net, net.Config()); err != nil {
//	    log.Fatal(err)
//	}
//
//	net, cfg, err := serialization.Load("models/xor.json")
//	if errors.Is(err, serialization.ErrModelNotFound) {
//	    // train a new one
//	}
package serialization
