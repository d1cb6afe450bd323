package pow

import (
	"math"
	"runtime"

	"git.gammaspectra.live/P2Pool/cnminer/monero/cryptonight"
	"git.gammaspectra.live/P2Pool/cnminer/utils"
	"github.com/klauspost/cpuid/v2"
)

// HasAES whether the CPU reports AES instructions the hardware kernels can use
func HasAES() bool {
	return cpuid.CPU.Supports(cpuid.AESNI) && cryptonight.HasHardwareAES()
}

// ResolveVariant picks the hardware or software single hash variant for VariantAuto, other values pass through
func ResolveVariant(v Variant) Variant {
	if v != VariantAuto {
		return v
	}
	if HasAES() {
		return VariantSingle
	}
	return VariantSingleSoft
}

func logicalCores() int {
	if cpuid.CPU.LogicalCores > 0 {
		return cpuid.CPU.LogicalCores
	}
	return runtime.NumCPU()
}

// RecommendedThreads one thread per scratchpad that fits in the last level cache, capped by logical cores
// and maxUsage percent of them, at least 1
func RecommendedThreads(algo Algorithm, maxUsage int) int {
	cache := cpuid.CPU.Cache.L3
	if cache <= 0 {
		cache = cpuid.CPU.Cache.L2
	}
	params, err := algo.Params()
	if err != nil {
		return 1
	}
	return optimalThreads(cache, int(params.Memory), logicalCores(), maxUsage)
}

func optimalThreads(cache, memory, threads, maxUsage int) int {
	if threads <= 1 {
		return 1
	}

	var count int
	if cache > 0 {
		count = cache / memory
	} else {
		count = threads / 2
	}

	if count > threads {
		count = threads
	}

	if maxUsage > 0 && maxUsage < 100 && count*100 > threads*maxUsage {
		count = int(math.Ceil(float64(threads*maxUsage) / 100))
	}

	return max(count, 1)
}

// CPUReport logs the CPU features relevant to kernel selection
func CPUReport() {
	utils.Logf("CPU", "%s", cpuid.CPU.BrandName)
	utils.Logf("CPU", "cores %d physical, %d logical", cpuid.CPU.PhysicalCores, logicalCores())
	if cpuid.CPU.Cache.L2 > 0 {
		utils.Logf("CPU", "L2 %s", utils.BinaryUnits(uint64(cpuid.CPU.Cache.L2)))
	}
	if cpuid.CPU.Cache.L3 > 0 {
		utils.Logf("CPU", "L3 %s", utils.BinaryUnits(uint64(cpuid.CPU.Cache.L3)))
	}
	utils.Logf("CPU", "AES %t, lite kernels %t", HasAES(), LiteSupported)
}
