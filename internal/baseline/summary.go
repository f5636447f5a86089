package baseline

// Summary describes the Baseline status categories. It never changes.
const Summary = "# 🌐 Web Platform Baseline\n\n" +
	"Baseline gives you clear information about which web platform features are ready to use in your projects today.\n\n" +
	"## Status Categories\n\n" +
	"✅ **Widely Available**: The feature works across browsers and has been stable for 30+ months. Safe for production.\n\n" +
	"🆕 **Newly Available**: The feature works across modern browsers but may not work in older versions. Use with progressive enhancement.\n\n" +
	"⚠️ **Limited Support**: The feature is not supported in all major browsers. Consider polyfills or alternatives.\n\n" +
	"❓ **No Data**: Insufficient data to determine baseline status.\n\n" +
	"Learn more: https://web.dev/baseline/"
