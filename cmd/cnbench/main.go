package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"git.gammaspectra.live/P2Pool/cnminer/miner"
	"git.gammaspectra.live/P2Pool/cnminer/pow"
	"git.gammaspectra.live/P2Pool/cnminer/stratum"
	"git.gammaspectra.live/P2Pool/cnminer/utils"
	fasthex "github.com/tmthrgd/go-hex"
)

// defaultBlob 76 byte block hashing blob of a major version 7 block, nonce zero
const defaultBlob = "0707f7a4f0d605b303260816ba3f10902e1a145ac5fad3aa3af6ea44c11869dc4f853f002b2eea0000000077b206a02ca5b1d4ce6bbfdf0acac38bded34d2dcdeef95cd20cefc12f61d56109"

func main() {
	algoName := flag.String("algo", "cryptonight", "Algorithm: cryptonight (cn) or cryptonight-lite (cn-lite)")
	variantName := flag.String("av", "auto", "Algorithm variant: auto, 1 (aesni), 2 (aesni double), 3 (softaes), 4 (softaes double)")
	threads := flag.Int("threads", 0, "Worker threads, 0 picks from cache size")
	maxUsage := flag.Int("max-cpu-usage", 75, "Maximum percentage of logical cores used when picking threads")
	hashes := flag.Uint64("hashes", 64, "Total hashes to compute")
	targetHex := flag.String("target", "b88d0600", "Pool target as 8 or 16 hex characters")
	blobHex := flag.String("blob", defaultBlob, "Hashing blob in hex, 76 to 83 bytes")
	variant := flag.Int("variant", -1, "Hash sub-variant: 0, 1, or -1 to select from blob major version")
	selfTestOnly := flag.Bool("self-test", false, "Only initialize and run the self-test")
	debug := flag.Bool("debug", false, "Log debug messages")

	flag.Parse()

	if *debug {
		utils.GlobalLogLevel |= utils.LogLevelDebug | utils.LogLevelNotice
	}

	algo, err := pow.ParseAlgorithm(*algoName)
	if err != nil {
		utils.Fatalf("%s", err)
	}

	av, err := pow.ParseVariant(*variantName)
	if err != nil {
		utils.Fatalf("%s", err)
	}
	av = pow.ResolveVariant(av)

	pow.CPUReport()

	if !pow.Init(algo, av) {
		utils.Fatalf("could not initialize %s with variant %s", algo, av)
	}

	backend, _ := pow.Active()

	if *selfTestOnly {
		utils.Logf("Bench", "%s self-test passed", backend.Name())
		return
	}

	target, err := stratum.ParseTarget(*targetHex)
	if err != nil {
		utils.Fatalf("%s", err)
	}

	blob, err := fasthex.DecodeString(*blobHex)
	if err != nil {
		utils.Fatalf("invalid blob: %s", err)
	}

	job, err := stratum.NewJob("bench", blob, target)
	if err != nil {
		utils.Fatalf("%s", err)
	}
	job.SetVariant(*variant)

	if *threads <= 0 {
		*threads = pow.RecommendedThreads(algo, *maxUsage)
	}

	utils.Logf("Bench", "%s %s sub-variant %s, difficulty %s, %d hashes on %d threads", backend.Name(), algo, job.Variant(), job.Difficulty().StringNumeric(), *hashes, *threads)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := miner.Bench(ctx, backend, job, *hashes, *threads)
	if err != nil {
		utils.Errorf("Bench", "%s", err)
		return
	}

	utils.Logf("Bench", "%d hashes in %s, %sH/s", result.Hashes, result.Duration, utils.SiUnits(result.Hashrate(), 2))
	utils.Logf("Bench", "%d shares, accepted difficulty %s, best %s", len(result.Shares), result.Difficulty.StringNumeric(), result.Best.StringNumeric())
	for _, share := range result.Shares {
		if buf, err := utils.MarshalJSON(share); err == nil {
			utils.Debugf("Bench", "share %s", buf)
		}
	}
}
